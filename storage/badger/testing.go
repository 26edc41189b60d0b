package badger

import "github.com/poiesic/userflow/storage"

// NewMemoryRunRepository creates an in-memory run ledger for testing.
// Closing the repository closes the database.
func NewMemoryRunRepository() (storage.RunRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return newRunRepository(backend, true), nil
}
