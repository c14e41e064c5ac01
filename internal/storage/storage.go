package storage

import (
	"context"

	"github.com/poolexpert/concierge/internal/models"
)

// Storage is the durable sink for captured leads and partner applications.
// Records are append-only: the service creates them once and never updates
// or deletes them.
type Storage interface {
	SaveLead(ctx context.Context, lead *models.Lead) (string, error)
	SaveApplication(ctx context.Context, app *models.Application) (string, error)
	ListApplications(ctx context.Context, status string) ([]*models.Application, error)
	Close() error
}
