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

// Package storage provides the storage abstraction for the pipeline run ledger.
//
// The ledger records one core.Run per pipeline invocation: when it ran, whether it
// succeeded, how many rows it wrote and the checksum of the file it produced. The
// users file itself is not stored here; see storage/csvfile.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep callers independent of the backend:
//
//	runs, err := badger.NewRunRepository(backend)  // returns storage.RunRepository
//
// Internal constructors may return concrete types since they're only used within
// the implementation package.
//
// # Usage
//
//	backend, err := badger.OpenBackend(filepath.Join(dataDir, ".runs"), false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runs, err := badger.NewRunRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer runs.Close()
//
// Use in tests with in-memory storage:
//
//	runs, err := badger.NewMemoryRunRepository()
//
// # Serialization
//
// Runs are encoded with mus-go. See MarshalRun and UnmarshalRun.
package storage
