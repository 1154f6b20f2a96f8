package storage

import "habitmind/internal/models"

// Provider is the storage capability: durably store and retrieve the whole
// application state as one atomic unit. Implementations are not safe for
// concurrent use; the tracker serializes access.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// State blob
	GetState() (models.State, error)
	SaveState(models.State) error

	// Utils
	GetConfigPath() string
}
