package encounter

import (
	"context"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// ServiceInterface defines the contract for encounter operations
type ServiceInterface interface {
	Schedule(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Encounter, error)
	List(ctx context.Context, pr *auth.Principal) ([]Encounter, error)
	Get(ctx context.Context, id string) (*Encounter, error)
	UpdateStatus(ctx context.Context, pr *auth.Principal, id string, req *UpdateStatusRequest) (*Encounter, error)
	Delete(ctx context.Context, pr *auth.Principal, id string) error
}
