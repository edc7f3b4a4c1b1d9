package worker

import (
	"context"
)

// Worker is the contract every background worker implements.
type Worker interface {
	// Start runs the worker until ctx is done or Stop is called.
	Start(ctx context.Context) error

	// Stop stops the worker.
	Stop() error

	// Name returns the worker name.
	Name() string
}
