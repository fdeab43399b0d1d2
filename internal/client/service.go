package client

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/AfyaLink-Health/health-records-service/internal/apperr"
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/cache"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/pagination"
)

const (
	profileCacheTTL       = 15 * time.Minute
	profileCacheKeyPrefix = "client_profile_"
	minSearchLength       = 2
)

// Service handles client business logic
type Service struct {
	repo      RepositoryInterface
	cache     cache.Store
	publisher messaging.PublisherInterface
}

// NewService creates a new client service
func NewService(repo RepositoryInterface, store cache.Store, publisher messaging.PublisherInterface) *Service {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &Service{repo: repo, cache: store, publisher: publisher}
}

// Register creates a new client record attributed to the acting user.
func (s *Service) Register(ctx context.Context, pr *auth.Principal, req *RegisterRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		RegisteredBy: pr.UserID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventClientRegistered, messaging.ClientRegisteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventClientRegistered),
		Data: messaging.ClientRegisteredData{
			ClientID:  c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			CreatedAt: c.CreatedAt,
		},
	})
	return c, nil
}

// List returns a page of clients with pagination metadata.
func (s *Service) List(ctx context.Context, params pagination.Params) ([]Client, *pagination.Meta, error) {
	params.Validate()
	clients, total, err := s.repo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, nil, err
	}
	meta := params.CalculateMeta(total)
	return clients, &meta, nil
}

// Search splits the query on whitespace and requires every term to match.
// Queries under two characters return an empty result rather than an error.
func (s *Service) Search(ctx context.Context, query string) ([]Client, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchLength {
		return []Client{}, nil
	}
	return s.repo.Search(ctx, strings.Fields(query))
}

// Get fetches a single client
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProfile serves the fan-out profile read-through from cache.
func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	key := profileCacheKeyPrefix + id
	if data, ok := s.cache.Get(key); ok {
		var p Profile
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		// Unreadable entry, drop it and fall through to the database.
		s.cache.Delete(key)
	}

	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		s.cache.Set(key, data, profileCacheTTL)
	}
	return p, nil
}

// GetComprehensive returns the condensed care view.
func (s *Service) GetComprehensive(ctx context.Context, id string) (*Comprehensive, error) {
	return s.repo.GetComprehensive(ctx, id)
}

// Delete removes a client and invalidates the cached profile. Doctors only.
func (s *Service) Delete(ctx context.Context, pr *auth.Principal, id string) error {
	if !pr.IsDoctor {
		return apperr.PermissionDenied("only doctors can delete clients")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(profileCacheKeyPrefix + id)

	s.publish(ctx, messaging.EventClientDeleted, messaging.ClientDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventClientDeleted),
		Data: messaging.ClientDeletedData{
			ClientID:  id,
			DeletedBy: pr.UserID,
			DeletedAt: time.Now().UTC(),
		},
	})
	return nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
