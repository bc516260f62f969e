package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gamestore/internal/domain"
	categoryrepo "gamestore/internal/repository/category"
	"github.com/shopspring/decimal"
)

type GameWriter interface {
	Upsert(ctx context.Context, g domain.Game) (*domain.Game, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, in categoryrepo.CreateInput) (*domain.Category, error)
}

// CSVImporter loads a games catalog export into the store. Expected columns:
// title, description, price, release_date, category, image_url. Categories
// are created on first sight by name.
type CSVImporter struct {
	reader     *csv.Reader
	games      GameWriter
	categories CategoryStore
}

func NewCSVImporter(r io.Reader, games GameWriter, categories CategoryStore) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		games:      games,
		categories: categories,
	}
}

// Run parses CSV rows and upserts one game per row. Returns the number of
// games imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	categoryIDs, err := i.loadCategories(ctx)
	if err != nil {
		return 0, err
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		title := pick(record, index, "title")
		categoryName := pick(record, index, "category")
		if title == "" && categoryName == "" {
			continue
		}
		if title == "" || categoryName == "" {
			return imported, fmt.Errorf("invalid row: title %q category %q", title, categoryName)
		}

		price, err := decimal.NewFromString(pick(record, index, "price"))
		if err != nil || price.IsNegative() {
			return imported, fmt.Errorf("invalid price for %q", title)
		}

		categoryID, ok := categoryIDs[strings.ToLower(categoryName)]
		if !ok {
			created, err := i.categories.Create(ctx, categoryrepo.CreateInput{Name: categoryName})
			if err != nil {
				return imported, fmt.Errorf("create category %q: %w", categoryName, err)
			}
			categoryID = created.ID
			categoryIDs[strings.ToLower(categoryName)] = categoryID
		}

		g := domain.Game{
			Title:       title,
			Description: pick(record, index, "description"),
			Price:       price,
			ReleaseDate: pick(record, index, "release_date"),
			CategoryID:  categoryID,
			ImageURL:    pick(record, index, "image_url"),
		}
		if _, err := i.games.Upsert(ctx, g); err != nil {
			return imported, fmt.Errorf("upsert game %q: %w", title, err)
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) loadCategories(ctx context.Context) (map[string]string, error) {
	existing, err := i.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	ids := make(map[string]string, len(existing))
	for _, c := range existing {
		ids[strings.ToLower(c.Name)] = c.ID
	}
	return ids, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
