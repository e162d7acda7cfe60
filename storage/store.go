package storage

import (
	"errors"
	"sync"

	"github.com/itiky/game-console/model"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("not found")
	// ErrSystemUser is returned on attempts to remove the system user.
	ErrSystemUser = errors.New("system user can't be removed")
)

type (
	// Store keeps the console resources: users, storage objects and tournaments.
	// Store is safe for concurrent use.
	Store struct {
		sync.RWMutex
		users       *Table[model.User]
		objects     *Table[model.StorageObject]
		tournaments *Table[model.Tournament]
	}
)

// NewStore creates a new empty Store object.
func NewStore() *Store {
	return &Store{
		users:       NewTable[model.User](),
		objects:     NewTable[model.StorageObject](),
		tournaments: NewTable[model.Tournament](),
	}
}
