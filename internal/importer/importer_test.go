package importer

import (
	"context"
	"strings"
	"testing"

	"gamestore/internal/domain"
	categoryrepo "gamestore/internal/repository/category"
)

type stubGames struct {
	upserted []domain.Game
}

func (s *stubGames) Upsert(_ context.Context, g domain.Game) (*domain.Game, error) {
	s.upserted = append(s.upserted, g)
	return &g, nil
}

type stubCategories struct {
	existing []domain.Category
	created  []string
}

func (s *stubCategories) List(context.Context) ([]domain.Category, error) {
	return s.existing, nil
}

func (s *stubCategories) Create(_ context.Context, in categoryrepo.CreateInput) (*domain.Category, error) {
	s.created = append(s.created, in.Name)
	return &domain.Category{ID: "cat-" + in.Name, Name: in.Name}, nil
}

func TestCSVImporterRun(t *testing.T) {
	csvData := `title,description,price,release_date,category,image_url
Starfall Tactics,Squad tactics,29.99,2023-09-14,Strategy,
Dungeon of Embers,Roguelike crawler,14.50,2022-03-01,Indie,https://cdn.example.com/embers.jpg
`
	games := &stubGames{}
	categories := &stubCategories{
		existing: []domain.Category{{ID: "cat-1", Name: "Strategy"}},
	}

	imp := NewCSVImporter(strings.NewReader(csvData), games, categories)
	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported, got %d", count)
	}

	if len(categories.created) != 1 || categories.created[0] != "Indie" {
		t.Fatalf("expected only Indie to be created, got %v", categories.created)
	}

	first := games.upserted[0]
	if first.CategoryID != "cat-1" {
		t.Errorf("expected existing category to be reused, got %q", first.CategoryID)
	}
	if first.Price.StringFixed(2) != "29.99" {
		t.Errorf("unexpected price %s", first.Price)
	}

	second := games.upserted[1]
	if second.CategoryID != "cat-Indie" {
		t.Errorf("expected created category id, got %q", second.CategoryID)
	}
	if second.ImageURL != "https://cdn.example.com/embers.jpg" {
		t.Errorf("unexpected image url %q", second.ImageURL)
	}
}

func TestCSVImporterRejectsBadPrice(t *testing.T) {
	csvData := `title,description,price,release_date,category,image_url
Broken Game,,not-a-price,,Action,
`
	imp := NewCSVImporter(strings.NewReader(csvData), &stubGames{}, &stubCategories{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid price")
	}
}

func TestCSVImporterSkipsBlankRows(t *testing.T) {
	csvData := `title,description,price,release_date,category,image_url
,,,,,
Starfall Tactics,,29.99,,Strategy,
`
	games := &stubGames{}
	imp := NewCSVImporter(strings.NewReader(csvData), games, &stubCategories{})
	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 imported, got %d", count)
	}
}
