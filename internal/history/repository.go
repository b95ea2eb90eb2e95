package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/wiglebt/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists and reads back the lookup history.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the lookup-history contract consumed by the CLI layer.
type Interface interface {
	SaveLookup(ctx context.Context, netid string, coords models.Coordinates) error
	RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error)
}

// Database is the subset of pgxpool.Pool used by the repository.
// pgxmock satisfies it in tests.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// NewDatabase creates a pgx connection pool for the lookup-history database.
func NewDatabase(host, port, user, password, name string) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return pool, nil
}
