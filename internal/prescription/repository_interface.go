package prescription

import "context"

// RepositoryInterface defines the contract for prescription persistence
type RepositoryInterface interface {
	Create(ctx context.Context, p *Prescription) error
	List(ctx context.Context) ([]Prescription, error)
	GetByID(ctx context.Context, id string) (*Prescription, error)
	Update(ctx context.Context, id string, req *UpdateRequest) (*Prescription, error)
	Delete(ctx context.Context, id string) error
	ClientExists(ctx context.Context, clientID string) (bool, error)
}
