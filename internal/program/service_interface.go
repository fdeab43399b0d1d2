package program

import (
	"context"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// ServiceInterface defines the contract for program operations
type ServiceInterface interface {
	Create(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Program, error)
	List(ctx context.Context, pr *auth.Principal) ([]Program, error)
	Get(ctx context.Context, id string) (*Program, error)
	Delete(ctx context.Context, pr *auth.Principal, id string) error
}
