package unitofwork

import "context"

// RepositoryFactory hands out units of work over one shared store handle.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
