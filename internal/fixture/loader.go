package fixture

import (
	"context"
	"fmt"
	"os"

	"shoe-store/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for fixtures on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based fixture loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "fixture-loader").Logger(),
	}
}

// Load reads a fixture file.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.Shoe, error) {
	l.logger.Info().Str("file", path).Msg("loading catalogue fixture")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open fixture file")
		return nil, fmt.Errorf("failed to open fixture file %s: %w", path, err)
	}
	defer file.Close()

	shoes, err := decode(ctx, file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read fixture file")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("shoes_loaded", len(shoes)).
		Msg("catalogue fixture loaded")

	return shoes, nil
}
