package metric

import (
	"context"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// ServiceInterface defines the contract for metric operations
type ServiceInterface interface {
	Record(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Metric, error)
	List(ctx context.Context, pr *auth.Principal) ([]Metric, error)
	Get(ctx context.Context, id string) (*Metric, error)
	Delete(ctx context.Context, pr *auth.Principal, id string) error
}
