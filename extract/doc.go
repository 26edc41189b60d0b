// Package extract fetches raw user records from the source API.
//
// The Extractor issues a single GET with a bounded timeout, fails with a
// *core.HTTPError on transport errors and non-2xx statuses, and decodes the JSON
// array body into a core.Table, preserving field and row order. There is no
// pagination and no retry.
package extract
