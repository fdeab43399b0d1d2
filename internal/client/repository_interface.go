package client

import "context"

// RepositoryInterface defines the contract for client persistence
type RepositoryInterface interface {
	Create(ctx context.Context, c *Client) error
	List(ctx context.Context, limit, offset int) ([]Client, int, error)
	Search(ctx context.Context, terms []string) ([]Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
	GetComprehensive(ctx context.Context, id string) (*Comprehensive, error)
	Delete(ctx context.Context, id string) error
}
