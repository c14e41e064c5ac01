package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/poolexpert/concierge/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveLead(ctx context.Context, lead *models.Lead) (string, error) {
	query := `
		INSERT INTO leads (email, phone, name, budget, project_type, timeline, notes, conversation_log, source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		lead.Email,
		lead.Phone,
		lead.Name,
		lead.Budget,
		lead.ProjectType,
		lead.Timeline,
		lead.Notes,
		lead.ConversationLog,
		lead.Source,
		lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt)

	if err != nil {
		return "", fmt.Errorf("error creating lead: %v", err)
	}

	return lead.ID, nil
}

func (s *PostgresStorage) SaveApplication(ctx context.Context, app *models.Application) (string, error) {
	query := `
		INSERT INTO applications (company_name, contact_name, email, phone, website, years_in_business,
			average_project_value, monthly_leads, biggest_challenge, why_interested, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		app.CompanyName,
		app.ContactName,
		app.Email,
		app.Phone,
		app.Website,
		app.YearsInBusiness,
		app.AverageProjectValue,
		app.MonthlyLeads,
		app.BiggestChallenge,
		app.WhyInterested,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt)

	if err != nil {
		return "", fmt.Errorf("error creating application: %v", err)
	}

	return app.ID, nil
}

func (s *PostgresStorage) ListApplications(ctx context.Context, status string) ([]*models.Application, error) {
	query := `
		SELECT id, company_name, contact_name, email, phone, website, years_in_business,
			average_project_value, monthly_leads, biggest_challenge, why_interested, status, created_at
		FROM applications`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying applications: %v", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app := &models.Application{}
		err := rows.Scan(
			&app.ID,
			&app.CompanyName,
			&app.ContactName,
			&app.Email,
			&app.Phone,
			&app.Website,
			&app.YearsInBusiness,
			&app.AverageProjectValue,
			&app.MonthlyLeads,
			&app.BiggestChallenge,
			&app.WhyInterested,
			&app.Status,
			&app.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning application: %v", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %v", err)
	}

	return apps, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
