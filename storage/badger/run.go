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

package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/userflow/core"
	"github.com/poiesic/userflow/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
	owned   bool
}

var _ storage.RunRepository = (*RunRepository)(nil)

// newRunRepository is an internal constructor that returns the concrete type.
func newRunRepository(backend *Backend, owned bool) *RunRepository {
	return &RunRepository{
		backend: backend,
		owned:   owned,
	}
}

// NewRunRepository creates a run ledger on an open backend.
// The caller keeps ownership of the backend.
func NewRunRepository(backend *Backend) (storage.RunRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is nil")
	}
	return newRunRepository(backend, false), nil
}

// OpenRunRepository opens a run ledger stored at path.
// Closing the repository closes the database.
func OpenRunRepository(path string) (storage.RunRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}
	return newRunRepository(backend, true), nil
}

// Close closes the database if the repository opened it.
func (r *RunRepository) Close() error {
	if !r.owned {
		return nil
	}
	return r.backend.Close()
}

// SaveRun stores a run and its start time index entry.
func (r *RunRepository) SaveRun(ctx context.Context, run *core.Run) error {
	if err := core.ValidateRun(run); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(run.ID)

		// Drop the stale index entry if the start time changed
		existing, err := readRun(tx, key)
		if err != nil {
			return err
		}
		if existing != nil && !existing.StartedAt.Equal(run.StartedAt) {
			if err := tx.Delete(makeRunStartKey(existing.StartedAt, existing.ID)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalRun(run)); err != nil {
			return err
		}
		if err := tx.Set(makeRunStartKey(run.StartedAt, run.ID), []byte(run.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRun retrieves a single run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id string) (*core.Run, error) {
	if id == "" {
		return nil, core.ErrEmptyRunID
	}

	var result *core.Run
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRun(tx, makeRunKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// RecentRuns retrieves the most recent runs, newest first.
func (r *RunRepository) RecentRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}

	results := []*core.Run{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key of the start index
		startKey := append(makePartialRunStartKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)), 0xff)
		prefix := []byte(runStartPrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}

			var id string
			if err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			run, err := readRun(tx, makeRunKey(id))
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// readRun reads a run from the transaction. Returns nil if the key is absent.
func readRun(tx *badger.Txn, key []byte) (*core.Run, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var run *core.Run
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		run, unmarshalErr = storage.UnmarshalRun(val)
		return unmarshalErr
	})
	return run, err
}
