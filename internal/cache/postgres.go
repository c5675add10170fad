package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

const createLocationCache = `
CREATE TABLE IF NOT EXISTS location_cache (
	cache_key  text PRIMARY KEY,
	payload    jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);`

// PostgresStore backs the location cache with a single-row table, for
// deployments that already run Postgres and no Redis.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects with retries and ensures the cache table
// exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	const maxRetries = 5
	const retryInterval = 2 * time.Second

	var db *sqlx.DB
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			break
		}
		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)
		time.Sleep(retryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if _, err := db.Exec(createLocationCache); err != nil {
		return nil, fmt.Errorf("ensure location_cache table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context) (*model.ResolvedLocation, error) {
	var raw []byte
	query := `SELECT payload FROM location_cache WHERE cache_key = $1;`
	err := s.db.GetContext(ctx, &raw, query, Key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to read location cache")
		return nil, err
	}
	var loc model.ResolvedLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, fmt.Errorf("corrupt location cache payload: %w", err)
	}
	return &loc, nil
}

func (s *PostgresStore) Set(ctx context.Context, loc model.ResolvedLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	query := `
	INSERT INTO location_cache (cache_key, payload, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (cache_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now();
	`
	if _, err := s.db.ExecContext(ctx, query, Key, raw); err != nil {
		log.Error().Err(err).Msg("failed to write location cache")
		return err
	}
	return nil
}
