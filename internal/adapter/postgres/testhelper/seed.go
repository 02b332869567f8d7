package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedModel inserts an empty taxonomy model and returns its id.
func SeedModel(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO models (name, locale) VALUES ($1, $2) RETURNING id`,
		"test-model-"+uuid.New().String()[:8], "en",
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed model: %v", err)
	}
	return id
}
