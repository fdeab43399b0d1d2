package metric

import "context"

// RepositoryInterface defines the contract for metric persistence
type RepositoryInterface interface {
	Create(ctx context.Context, m *Metric) error
	List(ctx context.Context) ([]Metric, error)
	GetByID(ctx context.Context, id string) (*Metric, error)
	Delete(ctx context.Context, id string) error
	ClientExists(ctx context.Context, clientID string) (bool, error)
}
