// Package persistence saves and loads the scraped-product snapshot as a
// JSON document. The envelope carries the scrape timestamp and record
// count next to the records themselves; the retrieval core only ever
// consumes the products array after deserialization.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopassist/shop-assistant/model"
)

// SnapshotFile is the on-disk envelope for a scraped snapshot.
type SnapshotFile struct {
	ScrapedAt     string          `json:"scraped_at"` // ISO-8601
	TotalProducts int             `json:"total_products"`
	Products      []model.Product `json:"products"`
}

// SaveSnapshot writes the products and their scrape timestamp to
// filePath, creating parent directories if needed.
func SaveSnapshot(filePath string, products []model.Product, scrapedAt time.Time) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if products == nil {
		products = []model.Product{}
	}
	envelope := SnapshotFile{
		ScrapedAt:     scrapedAt.Format(time.RFC3339),
		TotalProducts: len(products),
		Products:      products,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot file %s: %w", filePath, err)
	}
	return nil
}

// LoadSnapshot reads the snapshot envelope from filePath. If the file
// does not exist it returns os.ErrNotExist, allowing callers to handle
// fresh starts gracefully. A missing or unparseable scraped_at yields a
// zero timestamp rather than an error.
func LoadSnapshot(filePath string) ([]model.Product, time.Time, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, os.ErrNotExist
		}
		return nil, time.Time{}, fmt.Errorf("failed to read snapshot file %s: %w", filePath, err)
	}

	var envelope SnapshotFile
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot file %s: %w", filePath, err)
	}

	scrapedAt, err := time.Parse(time.RFC3339, envelope.ScrapedAt)
	if err != nil {
		scrapedAt = time.Time{}
	}

	if envelope.Products == nil {
		envelope.Products = []model.Product{}
	}
	return envelope.Products, scrapedAt, nil
}
