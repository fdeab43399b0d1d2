package encounter

import "context"

// RepositoryInterface defines the contract for encounter persistence
type RepositoryInterface interface {
	Create(ctx context.Context, e *Encounter) error
	List(ctx context.Context) ([]Encounter, error)
	GetByID(ctx context.Context, id string) (*Encounter, error)
	UpdateStatus(ctx context.Context, id, status string) (*Encounter, error)
	Delete(ctx context.Context, id string) error
	ClientExists(ctx context.Context, clientID string) (bool, error)
	ProviderIsStaff(ctx context.Context, userID string) (bool, error)
}
