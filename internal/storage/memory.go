package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poolexpert/concierge/internal/models"
)

// MemoryStorage is an in-memory Storage for local development and tests.
type MemoryStorage struct {
	mu           sync.RWMutex
	leads        map[string]*models.Lead
	applications map[string]*models.Application
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		leads:        make(map[string]*models.Lead),
		applications: make(map[string]*models.Application),
	}
}

func (s *MemoryStorage) SaveLead(ctx context.Context, lead *models.Lead) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *lead
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now()
	s.leads[stored.ID] = &stored

	lead.ID = stored.ID
	lead.CreatedAt = stored.CreatedAt
	return stored.ID, nil
}

func (s *MemoryStorage) SaveApplication(ctx context.Context, app *models.Application) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *app
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now()
	s.applications[stored.ID] = &stored

	app.ID = stored.ID
	app.CreatedAt = stored.CreatedAt
	return stored.ID, nil
}

func (s *MemoryStorage) ListApplications(ctx context.Context, status string) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := make([]*models.Application, 0, len(s.applications))
	for _, app := range s.applications {
		if status != "" && app.Status != status {
			continue
		}
		apps = append(apps, app)
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})

	return apps, nil
}

// Leads returns a snapshot of stored leads, newest first. Test helper.
func (s *MemoryStorage) Leads() []*models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leads := make([]*models.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		leads = append(leads, l)
	}
	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads
}

func (s *MemoryStorage) Close() error {
	return nil
}
