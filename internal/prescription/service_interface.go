package prescription

import (
	"context"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// ServiceInterface defines the contract for prescription operations
type ServiceInterface interface {
	Create(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Prescription, error)
	List(ctx context.Context, pr *auth.Principal) ([]Prescription, error)
	Get(ctx context.Context, id string) (*Prescription, error)
	Update(ctx context.Context, pr *auth.Principal, id string, req *UpdateRequest) (*Prescription, error)
	Delete(ctx context.Context, pr *auth.Principal, id string) error
}
