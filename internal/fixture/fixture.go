// Package fixture loads catalogue fixtures: JSON arrays of shoes, optionally
// gzipped, read from the local file system or from S3.
package fixture

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"shoe-store/internal/model"
)

// Loader defines the interface for loading catalogue fixtures.
type Loader interface {
	// Load reads the fixture at path and returns its shoes.
	Load(ctx context.Context, path string) ([]model.Shoe, error)
}

// ctxCheckInterval is how many entries are decoded between cancellation checks.
const ctxCheckInterval = 1000

// decode reads a JSON array of shoes from r, gunzipping first when the
// name ends in .gz.
func decode(ctx context.Context, r io.Reader, name string) ([]model.Shoe, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	dec := json.NewDecoder(bufio.NewReaderSize(r, 64*1024))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("fixture %s must be a JSON array", name)
	}

	shoes := []model.Shoe{}
	for dec.More() {
		if len(shoes)%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		var s model.Shoe
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode entry %d of %s: %w", len(shoes), name, err)
		}
		shoes = append(shoes, s)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
	}

	return shoes, nil
}
