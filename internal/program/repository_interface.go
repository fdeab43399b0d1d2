package program

import "context"

// RepositoryInterface defines the contract for program persistence
type RepositoryInterface interface {
	Create(ctx context.Context, p *Program) error
	List(ctx context.Context) ([]Program, error)
	GetByID(ctx context.Context, id string) (*Program, error)
	Delete(ctx context.Context, id string) error
}
