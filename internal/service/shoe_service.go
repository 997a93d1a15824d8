package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"shoe-store/internal/cache"
	"shoe-store/internal/catalog"
	"shoe-store/internal/model"
	"shoe-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultLimit = 24
	maxLimit     = 100
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var audiences = map[string]bool{
	model.AudienceMen:    true,
	model.AudienceWomen:  true,
	model.AudienceKids:   true,
	model.AudienceUnisex: true,
}

// Clock returns the current time.
type Clock func() time.Time

// shoeService implements ShoeService.
type shoeService struct {
	repo   repository.ShoeRepository
	cache  cache.Cache[[]model.Shoe]
	now    Clock
	logger zerolog.Logger
}

// NewShoeService creates a new shoe service. A nil cache disables caching
// and a nil clock uses time.Now.
func NewShoeService(repo repository.ShoeRepository, listings cache.Cache[[]model.Shoe], now Clock, logger zerolog.Logger) ShoeService {
	if listings == nil {
		listings = cache.NewNoop[[]model.Shoe]()
	}
	if now == nil {
		now = time.Now
	}
	return &shoeService{
		repo:   repo,
		cache:  listings,
		now:    now,
		logger: logger.With().Str("service", "shoe").Logger(),
	}
}

// List retrieves a page of shoes for a section.
func (s *shoeService) List(ctx context.Context, q ListQuery) ([]model.ShoeCard, error) {
	section, ok := catalog.ParseSection(q.Section)
	if !ok {
		s.logger.Debug().Str("section", q.Section).Msg("unknown section")
		return nil, model.ErrUnknownSection
	}

	sort, ok := catalog.ParseSort(q.Sort)
	if !ok {
		s.logger.Debug().Str("sort", q.Sort).Msg("invalid sort")
		return nil, model.ErrInvalidSort
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	now := s.now()
	filter := sectionFilter(section.Slug, now)
	filter.Sort = sort
	filter.Limit = limit
	filter.Offset = offset

	shoes, err := s.listShoes(ctx, section.Slug, filter)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("section", section.Slug).
		Str("sort", sort).
		Int("count", len(shoes)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved shoes")

	return classifyAll(shoes, now), nil
}

// listShoes reads through the listing cache. The new releases section depends
// on the current time, so it always goes to the repository. The cache
// generation is read before the repository, so a result that raced with a
// write is stored under a key that is already stale.
func (s *shoeService) listShoes(ctx context.Context, section string, filter model.ShoeFilter) ([]model.Shoe, error) {
	cacheable := section != catalog.SectionNew

	var key string
	if cacheable {
		gen, err := s.cache.Generation(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("listing cache generation read failed")
			cacheable = false
		}
		key = fmt.Sprintf("%d:%s:%s:%d:%d", gen, section, filter.Sort, filter.Limit, filter.Offset)
	}

	if cacheable {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("listing cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	shoes, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("section", section).Msg("failed to list shoes")
		return nil, fmt.Errorf("failed to list shoes: %w", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, &shoes); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("listing cache write failed")
		}
	}

	return shoes, nil
}

// sectionFilter maps a header section to a repository filter.
func sectionFilter(section string, now time.Time) model.ShoeFilter {
	var filter model.ShoeFilter

	switch section {
	case catalog.SectionSale:
		onSale := true
		filter.OnSale = &onSale
	case catalog.SectionNew:
		onSale := false
		cutoff := catalog.RecencyCutoff(now)
		filter.OnSale = &onSale
		filter.ReleasedAfter = &cutoff
	case catalog.SectionMen, catalog.SectionWomen, catalog.SectionKids:
		filter.Audience = section
	}

	return filter
}

// GetBySlug retrieves a single shoe.
func (s *shoeService) GetBySlug(ctx context.Context, slug string) (*model.ShoeCard, error) {
	if slug == "" {
		s.logger.Warn().Msg("shoe slug is empty")
		return nil, model.ErrShoeNotFound
	}

	shoe, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get shoe by slug")
		return nil, fmt.Errorf("failed to get shoe: %w", err)
	}

	if shoe == nil {
		s.logger.Debug().Str("slug", slug).Msg("shoe not found")
		return nil, model.ErrShoeNotFound
	}

	card := classify(*shoe, s.now())
	return &card, nil
}

// Create adds a shoe to the catalogue.
func (s *shoeService) Create(ctx context.Context, req *model.CreateShoeRequest) (*model.ShoeCard, error) {
	shoe := model.Shoe{
		ID:          uuid.New(),
		Slug:        req.Slug,
		Name:        req.Name,
		ImageSrc:    req.ImageSrc,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		ReleaseDate: req.ReleaseDate,
		NumOfColors: req.NumOfColors,
		Audience:    req.Audience,
	}
	if shoe.Audience == "" {
		shoe.Audience = model.AudienceUnisex
	}

	if err := validateShoe(shoe); err != nil {
		s.logger.Warn().Err(err).Str("slug", req.Slug).Msg("invalid shoe")
		return nil, err
	}

	if err := s.repo.Create(ctx, &shoe); err != nil {
		if errors.Is(err, model.ErrDuplicateSlug) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("slug", shoe.Slug).Msg("failed to create shoe")
		return nil, fmt.Errorf("failed to create shoe: %w", err)
	}

	s.invalidate(ctx)

	s.logger.Info().
		Str("shoe_id", shoe.ID.String()).
		Str("slug", shoe.Slug).
		Msg("shoe created")

	card := classify(shoe, s.now())
	return &card, nil
}

// Import upserts shoes by slug. Shoes without an ID get a new one and an
// empty audience becomes unisex. Nothing is written if any shoe is invalid
// or a slug repeats, so the returned count is the number of distinct shoes.
func (s *shoeService) Import(ctx context.Context, shoes []model.Shoe) (int, error) {
	prepared := make([]model.Shoe, len(shoes))
	seen := make(map[string]int, len(shoes))
	for i, shoe := range shoes {
		if first, ok := seen[shoe.Slug]; ok {
			s.logger.Warn().Int("index", i).Str("slug", shoe.Slug).Msg("duplicate slug in import")
			return 0, model.NewDomainError(model.ErrCodeInvalidShoe,
				fmt.Sprintf("entry %d: duplicate slug %q (first seen at entry %d)", i, shoe.Slug, first))
		}
		seen[shoe.Slug] = i

		if shoe.ID == uuid.Nil {
			shoe.ID = uuid.New()
		}
		if shoe.Audience == "" {
			shoe.Audience = model.AudienceUnisex
		}
		if err := validateShoe(shoe); err != nil {
			s.logger.Warn().Err(err).Int("index", i).Str("slug", shoe.Slug).Msg("invalid shoe in import")
			return 0, model.NewDomainError(model.ErrCodeInvalidShoe, fmt.Sprintf("entry %d: %s", i, err.Error()))
		}
		prepared[i] = shoe
	}

	n, err := s.repo.Upsert(ctx, prepared)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(prepared)).Msg("failed to import shoes")
		return 0, fmt.Errorf("failed to import shoes: %w", err)
	}

	s.invalidate(ctx)

	s.logger.Info().Int("count", n).Msg("catalogue imported")
	return n, nil
}

func (s *shoeService) invalidate(ctx context.Context) {
	if err := s.cache.Flush(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to flush listing cache")
	}
}

// validateShoe checks the fields a catalogue entry needs. Classification
// itself never validates.
func validateShoe(shoe model.Shoe) error {
	invalid := func(msg string) error {
		return model.NewDomainError(model.ErrCodeInvalidShoe, msg)
	}

	switch {
	case !slugPattern.MatchString(shoe.Slug):
		return invalid("slug must be lowercase letters, digits and single hyphens")
	case shoe.Name == "":
		return invalid("name is required")
	case shoe.Price < 0:
		return invalid("price must not be negative")
	case shoe.SalePrice != nil && *shoe.SalePrice < 0:
		return invalid("sale price must not be negative")
	case shoe.NumOfColors < 0:
		return invalid("number of colors must not be negative")
	case shoe.ReleaseDate.IsZero():
		return invalid("release date is required")
	case !audiences[shoe.Audience]:
		return invalid("audience must be men, women, kids or unisex")
	}
	return nil
}

func classify(shoe model.Shoe, now time.Time) model.ShoeCard {
	return model.ShoeCard{
		Shoe:    shoe,
		Variant: catalog.Classify(shoe.SalePrice, shoe.ReleaseDate, now),
	}
}

func classifyAll(shoes []model.Shoe, now time.Time) []model.ShoeCard {
	cards := make([]model.ShoeCard, 0, len(shoes))
	for _, shoe := range shoes {
		cards = append(cards, classify(shoe, now))
	}
	return cards
}
