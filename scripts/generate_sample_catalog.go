package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"shoe-store/internal/catalog"
	"shoe-store/internal/model"

	"github.com/google/uuid"
)

// generateSampleCatalog writes data/catalog/shoes.json.gz, a fixture that
// covers every card variant relative to the time the script runs:
//   - discounted shoes (including one released last week, where the sale wins)
//   - shoes released within the last 30 days
//   - older full-price shoes
func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	cents := func(c int64) *int64 { return &c }

	shoes := []model.Shoe{
		{Slug: "tech-challenge-777", Name: "NikeCourt Tech Challenge 20", Price: 16500, ReleaseDate: daysAgo(2), NumOfColors: 2, Audience: model.AudienceMen},
		{Slug: "legend-essential", Name: "Nike Legend Essential", Price: 11000, SalePrice: cents(6000), ReleaseDate: daysAgo(10), NumOfColors: 1, Audience: model.AudienceWomen},
		{Slug: "pegasus-trail", Name: "Nike Pegasus Trail", Price: 12500, ReleaseDate: daysAgo(45), NumOfColors: 5, Audience: model.AudienceWomen},
		{Slug: "air-max-270", Name: "Nike Air Max 270", Price: 15000, SalePrice: cents(12490), ReleaseDate: daysAgo(120), NumOfColors: 4, Audience: model.AudienceMen},
		{Slug: "metcon-6", Name: "Nike Metcon 6", Price: 13000, ReleaseDate: daysAgo(200), NumOfColors: 3, Audience: model.AudienceUnisex},
		{Slug: "react-infinity-2", Name: "Nike React Infinity Run Flyknit 2", Price: 16000, ReleaseDate: daysAgo(29), NumOfColors: 6, Audience: model.AudienceMen},
		{Slug: "phantom-gt", Name: "Nike Phantom GT Elite", Price: 25000, SalePrice: cents(17500), ReleaseDate: daysAgo(365), NumOfColors: 2, Audience: model.AudienceUnisex},
		{Slug: "flex-runner", Name: "Nike Flex Runner", Price: 5000, ReleaseDate: daysAgo(7), NumOfColors: 1, Audience: model.AudienceKids},
		{Slug: "revolution-5", Name: "Nike Revolution 5", Price: 4500, SalePrice: cents(3490), ReleaseDate: daysAgo(90), NumOfColors: 3, Audience: model.AudienceKids},
		{Slug: "blazer-mid-77", Name: "Nike Blazer Mid '77", Price: 10000, ReleaseDate: daysAgo(400), NumOfColors: 8, Audience: model.AudienceUnisex},
	}

	for i := range shoes {
		shoes[i].ID = uuid.New()
		shoes[i].ImageSrc = "/assets/" + shoes[i].Slug + ".jpg"
	}

	filePath := filepath.Join(dataDir, "shoes.json.gz")
	if err := createCatalogFile(filePath, shoes); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d shoes\n\n", filePath, len(shoes))
	for _, s := range shoes {
		v := catalog.Classify(s.SalePrice, s.ReleaseDate, now)
		fmt.Printf("  - %-22s %-12s %s\n", s.Slug, v, catalog.FormatPrice(s.EffectivePrice()))
	}
}

func createCatalogFile(filePath string, shoes []model.Shoe) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(shoes); err != nil {
		return fmt.Errorf("failed to write shoes: %w", err)
	}

	return nil
}
