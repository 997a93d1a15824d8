package fixture

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixture = `[
  {
    "slug": "pegasus",
    "name": "Pegasus",
    "imageSrc": "/assets/pegasus.jpg",
    "price": 16500,
    "salePrice": 12000,
    "releaseDate": "2024-06-29T00:00:00Z",
    "numOfColors": 3,
    "audience": "men"
  },
  {
    "slug": "tempo",
    "name": "Tempo",
    "imageSrc": "/assets/tempo.jpg",
    "price": 9000,
    "releaseDate": "2023-01-01T00:00:00Z",
    "numOfColors": 1,
    "audience": "women"
  }
]`

// writeFixture writes content to a temp file, gzipping it when name ends in .gz.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	if filepath.Ext(name) == ".gz" {
		gzipWriter := gzip.NewWriter(file)
		_, err = gzipWriter.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gzipWriter.Close())
		return path
	}

	_, err = file.WriteString(content)
	require.NoError(t, err)
	return path
}

func TestFileLoader_Load(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "Plain JSON", filename: "shoes.json"},
		{name: "Gzipped JSON", filename: "shoes.json.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.filename, sampleFixture)
			loader := NewFileLoader(zerolog.Nop())

			shoes, err := loader.Load(context.Background(), path)

			require.NoError(t, err)
			require.Len(t, shoes, 2)

			assert.Equal(t, "pegasus", shoes[0].Slug)
			assert.Equal(t, int64(16500), shoes[0].Price)
			require.NotNil(t, shoes[0].SalePrice)
			assert.Equal(t, int64(12000), *shoes[0].SalePrice)
			assert.Equal(t, time.Date(2024, time.June, 29, 0, 0, 0, 0, time.UTC), shoes[0].ReleaseDate.UTC())
			assert.Equal(t, 3, shoes[0].NumOfColors)

			assert.Equal(t, "tempo", shoes[1].Slug)
			assert.Nil(t, shoes[1].SalePrice)
			assert.Equal(t, "women", shoes[1].Audience)
		})
	}
}

func TestFileLoader_Load_ZeroSalePriceIsKept(t *testing.T) {
	path := writeFixture(t, "zero.json", `[{"slug":"free","price":100,"salePrice":0,"releaseDate":"2020-01-01T00:00:00Z"}]`)

	shoes, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, shoes, 1)
	require.NotNil(t, shoes[0].SalePrice)
	assert.Equal(t, int64(0), *shoes[0].SalePrice)
}

func TestFileLoader_Load_EmptyArray(t *testing.T) {
	path := writeFixture(t, "empty.json", `[]`)

	shoes, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), path)

	require.NoError(t, err)
	assert.Empty(t, shoes)
}

func TestFileLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		errMatch string
	}{
		{
			name:     "Not an array",
			filename: "object.json",
			content:  `{"slug":"pegasus"}`,
			errMatch: "must be a JSON array",
		},
		{
			name:     "Bad entry",
			filename: "bad.json",
			content:  `[{"slug":"pegasus","price":"expensive"}]`,
			errMatch: "failed to decode entry 0",
		},
		{
			name:     "Truncated",
			filename: "truncated.json",
			content:  `[{"slug":"pegasus"}`,
			errMatch: "failed to read fixture",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.filename, tt.content)

			shoes, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), path)

			require.Error(t, err)
			assert.Nil(t, shoes)
			assert.Contains(t, err.Error(), tt.errMatch)
		})
	}
}

func TestFileLoader_Load_InvalidGzip(t *testing.T) {
	path := writeFixture(t, "plain.json", sampleFixture)
	gzPath := path + ".gz"
	require.NoError(t, os.Rename(path, gzPath))

	_, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), gzPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	_, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), "/nonexistent/shoes.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open fixture file")
}

func TestFileLoader_Load_ContextCancellation(t *testing.T) {
	path := writeFixture(t, "shoes.json", sampleFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader(zerolog.Nop()).Load(ctx, path)

	assert.ErrorIs(t, err, context.Canceled)
}
