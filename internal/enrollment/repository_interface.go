package enrollment

import "context"

// RepositoryInterface defines the contract for enrollment persistence
type RepositoryInterface interface {
	Create(ctx context.Context, e *Enrollment) error
	List(ctx context.Context) ([]Enrollment, error)
	GetByID(ctx context.Context, id string) (*Enrollment, error)
	Exists(ctx context.Context, clientID, programID string) (bool, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
	ProgramName(ctx context.Context, programID string) (string, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
