package enrollment

import (
	"context"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// ServiceInterface defines the contract for enrollment operations
type ServiceInterface interface {
	Enroll(ctx context.Context, pr *auth.Principal, req *CreateRequest) (*Enrollment, error)
	List(ctx context.Context, pr *auth.Principal) ([]Enrollment, error)
	Get(ctx context.Context, id string) (*Enrollment, error)
	Deactivate(ctx context.Context, pr *auth.Principal, id string) error
	Delete(ctx context.Context, pr *auth.Principal, id string) error
}
