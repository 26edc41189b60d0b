// Package pipeline sequences the extract, enrich and load stages.
//
// A Pipeline runs its stages strictly in order and stops at the first failure. The
// loader never runs after a failed stage, so a failed run leaves any previous users
// file untouched. When a run repository is configured every run, successful or not,
// is recorded in the ledger.
package pipeline
