package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shoe-store/internal/catalog"
	"shoe-store/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

const shoeColumns = `id, slug, name, image_src, price_cents, sale_price_cents, release_date, num_of_colors, audience, created_at`

// shoeRepository implements the ShoeRepository interface using PostgreSQL.
type shoeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewShoeRepository creates a new PostgreSQL-backed shoe repository.
func NewShoeRepository(pool *pgxpool.Pool, logger zerolog.Logger) ShoeRepository {
	return &shoeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "shoe").Logger(),
	}
}

// buildListQuery turns a filter into SQL and its arguments.
func buildListQuery(filter model.ShoeFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if filter.Audience != "" {
		args = append(args, filter.Audience)
		where = append(where, fmt.Sprintf("audience = $%d", len(args)))
	}
	if filter.OnSale != nil {
		if *filter.OnSale {
			where = append(where, "sale_price_cents IS NOT NULL")
		} else {
			where = append(where, "sale_price_cents IS NULL")
		}
	}
	if filter.ReleasedAfter != nil {
		args = append(args, *filter.ReleasedAfter)
		where = append(where, fmt.Sprintf("release_date > $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(shoeColumns)
	b.WriteString(" FROM shoes")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	switch filter.Sort {
	case catalog.SortPrice:
		b.WriteString(" ORDER BY COALESCE(sale_price_cents, price_cents) ASC, name")
	default:
		b.WriteString(" ORDER BY release_date DESC, name")
	}

	args = append(args, filter.Limit, filter.Offset)
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

// List retrieves shoes matching the filter.
func (r *shoeRepository) List(ctx context.Context, filter model.ShoeFilter) ([]model.Shoe, error) {
	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to query shoes")
		return nil, fmt.Errorf("failed to query shoes: %w", err)
	}
	defer rows.Close()

	shoes := []model.Shoe{}
	for rows.Next() {
		var s model.Shoe
		if err := scanShoe(rows, &s); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan shoe row")
			return nil, fmt.Errorf("failed to scan shoe: %w", err)
		}
		shoes = append(shoes, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating shoe rows")
		return nil, fmt.Errorf("error iterating shoes: %w", err)
	}

	return shoes, nil
}

// GetBySlug retrieves a single shoe by its slug.
func (r *shoeRepository) GetBySlug(ctx context.Context, slug string) (*model.Shoe, error) {
	query := `SELECT ` + shoeColumns + ` FROM shoes WHERE slug = $1`

	var s model.Shoe
	err := scanShoe(r.pool.QueryRow(ctx, query, slug), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("slug", slug).Msg("shoe not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query shoe")
		return nil, fmt.Errorf("failed to query shoe: %w", err)
	}

	return &s, nil
}

// Create inserts a new shoe and fills in its creation time.
func (r *shoeRepository) Create(ctx context.Context, shoe *model.Shoe) error {
	query := `
		INSERT INTO shoes (id, slug, name, image_src, price_cents, sale_price_cents, release_date, num_of_colors, audience)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		shoe.ID, shoe.Slug, shoe.Name, shoe.ImageSrc, shoe.Price, shoe.SalePrice,
		shoe.ReleaseDate, shoe.NumOfColors, shoe.Audience,
	).Scan(&shoe.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Warn().Str("slug", shoe.Slug).Msg("duplicate shoe slug")
			return model.ErrDuplicateSlug
		}
		r.logger.Error().Err(err).Str("slug", shoe.Slug).Msg("failed to insert shoe")
		return fmt.Errorf("failed to insert shoe: %w", err)
	}

	r.logger.Info().
		Str("shoe_id", shoe.ID.String()).
		Str("slug", shoe.Slug).
		Msg("shoe created")

	return nil
}

// Upsert inserts or replaces shoes by slug in a single transaction.
func (r *shoeRepository) Upsert(ctx context.Context, shoes []model.Shoe) (int, error) {
	if len(shoes) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO shoes (id, slug, name, image_src, price_cents, sale_price_cents, release_date, num_of_colors, audience)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			image_src = EXCLUDED.image_src,
			price_cents = EXCLUDED.price_cents,
			sale_price_cents = EXCLUDED.sale_price_cents,
			release_date = EXCLUDED.release_date,
			num_of_colors = EXCLUDED.num_of_colors,
			audience = EXCLUDED.audience
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, s := range shoes {
		batch.Queue(query,
			s.ID, s.Slug, s.Name, s.ImageSrc, s.Price, s.SalePrice,
			s.ReleaseDate, s.NumOfColors, s.Audience,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range shoes {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			r.logger.Error().Err(err).Str("slug", shoes[i].Slug).Msg("failed to upsert shoe")
			return 0, fmt.Errorf("failed to upsert shoe %s: %w", shoes[i].Slug, err)
		}
	}
	if err := results.Close(); err != nil {
		r.logger.Error().Err(err).Msg("failed to close batch results")
		return 0, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit transaction")
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info().Int("count", len(shoes)).Msg("shoes upserted")

	return len(shoes), nil
}

// scanShoe reads one shoe row in shoeColumns order.
func scanShoe(row pgx.Row, s *model.Shoe) error {
	return row.Scan(
		&s.ID, &s.Slug, &s.Name, &s.ImageSrc, &s.Price, &s.SalePrice,
		&s.ReleaseDate, &s.NumOfColors, &s.Audience, &s.CreatedAt,
	)
}
