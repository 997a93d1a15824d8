package integration

import (
	"context"
	"testing"
	"time"

	"shoe-store/internal/config"
	"shoe-store/internal/database"
	"shoe-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testNow is the fixed clock used by the integration server.
var testNow = time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the catalogue schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedShoes returns the shoes inserted by SeedCatalog, relative to testNow:
//   - pegasus: on sale and released yesterday, so the sale wins
//   - metcon: released ten days ago
//   - blazer: released a year ago at full price
//   - revolution: kids, on sale for zero
//   - react: released exactly thirty days ago, so no longer new
func SeedShoes() []model.Shoe {
	cents := func(c int64) *int64 { return &c }
	return []model.Shoe{
		{Slug: "pegasus", Name: "Pegasus", ImageSrc: "/assets/pegasus.jpg", Price: 16500, SalePrice: cents(12000), ReleaseDate: testNow.AddDate(0, 0, -1), NumOfColors: 1, Audience: model.AudienceMen},
		{Slug: "metcon", Name: "Metcon", ImageSrc: "/assets/metcon.jpg", Price: 13000, ReleaseDate: testNow.AddDate(0, 0, -10), NumOfColors: 3, Audience: model.AudienceWomen},
		{Slug: "blazer", Name: "Blazer", ImageSrc: "/assets/blazer.jpg", Price: 10000, ReleaseDate: testNow.AddDate(-1, 0, 0), NumOfColors: 8, Audience: model.AudienceUnisex},
		{Slug: "revolution", Name: "Revolution", ImageSrc: "/assets/revolution.jpg", Price: 4500, SalePrice: cents(0), ReleaseDate: testNow.AddDate(0, -3, 0), NumOfColors: 2, Audience: model.AudienceKids},
		{Slug: "react", Name: "React", ImageSrc: "/assets/react.jpg", Price: 16000, ReleaseDate: testNow.AddDate(0, 0, -30), NumOfColors: 6, Audience: model.AudienceMen},
	}
}

// SeedCatalog inserts SeedShoes into the database.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	for _, s := range SeedShoes() {
		_, err := pool.Exec(ctx,
			`INSERT INTO shoes (id, slug, name, image_src, price_cents, sale_price_cents, release_date, num_of_colors, audience)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New(), s.Slug, s.Name, s.ImageSrc, s.Price, s.SalePrice, s.ReleaseDate, s.NumOfColors, s.Audience,
		)
		if err != nil {
			t.Fatalf("failed to seed shoe %s: %v", s.Slug, err)
		}
	}
}

// CleanupDB removes all catalogue rows.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM shoes"); err != nil {
		t.Logf("failed to clean table shoes: %v", err)
	}
}
