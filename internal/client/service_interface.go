package client

import (
	"context"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/pagination"
)

// ServiceInterface defines the contract for client operations
type ServiceInterface interface {
	Register(ctx context.Context, pr *auth.Principal, req *RegisterRequest) (*Client, error)
	List(ctx context.Context, params pagination.Params) ([]Client, *pagination.Meta, error)
	Search(ctx context.Context, query string) ([]Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
	GetComprehensive(ctx context.Context, id string) (*Comprehensive, error)
	Delete(ctx context.Context, pr *auth.Principal, id string) error
}
