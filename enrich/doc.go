// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package enrich augments raw user records with generated profile fields.
//
// For every row the Enricher reads name, username, email and address.city, asks an
// ai.ProfileGenerator for a profile and merges profile_summary and learning_path into
// a copy of the row. Rows are processed one at a time, in order. The first failing row
// aborts the batch and no partial table is returned.
//
// # Usage
//
//	enricher := enrich.NewEnricher(provider.ProfileGenerator(),
//	    enrich.WithProgress(os.Stdout),
//	)
//	enriched, err := enricher.Enrich(ctx, table)
package enrich
