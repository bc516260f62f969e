package catalog

import (
	"context"
	"strings"

	"gamestore/internal/domain"
	categoryrepo "gamestore/internal/repository/category"
)

// Service exposes the storefront catalog: game listing with filters plus the
// moderator-gated mutations.
type Service struct {
	games      gameRepo
	categories categoryRepo
	mediaHost  string
}

type gameRepo interface {
	List(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error)
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, g domain.Game) (*domain.Game, error)
	Update(ctx context.Context, g domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
}

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, in categoryrepo.CreateInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in categoryrepo.CreateInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// New creates a Service. mediaHost, when set, is prepended to relative
// image paths so clients always receive absolute URLs.
func New(games gameRepo, categories categoryRepo, mediaHost string) *Service {
	return &Service{games: games, categories: categories, mediaHost: strings.TrimRight(mediaHost, "/")}
}

// List returns games matching the filter. Description matching is enabled
// only when the caller is a moderator.
func (s *Service) List(ctx context.Context, filter domain.GameFilter, moderator bool) ([]domain.Game, error) {
	filter.SearchDescription = moderator
	if filter.Sort != "" && !validSort(filter.Sort) {
		return nil, domain.InvalidInput("unsupported sort key")
	}
	games, err := s.games.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range games {
		games[i].ImageURL = s.mediaURL(games[i].ImageURL)
	}
	return games, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Game, error) {
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.ImageURL = s.mediaURL(g.ImageURL)
	return g, nil
}

func (s *Service) mediaURL(path string) string {
	if s.mediaHost == "" || path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.mediaHost + "/" + strings.TrimLeft(path, "/")
}

// GameInput carries the mutable fields of a game.
type GameInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ReleaseDate string `json:"releaseDate"`
	CategoryID  string `json:"categoryId"`
	ImageURL    string `json:"imageUrl"`
}

func (s *Service) CreateGame(ctx context.Context, in GameInput, sellerID *string) (*domain.Game, error) {
	g, err := gameFromInput(in)
	if err != nil {
		return nil, err
	}
	g.SellerID = sellerID
	return s.games.Create(ctx, *g)
}

func (s *Service) UpdateGame(ctx context.Context, id string, in GameInput) (*domain.Game, error) {
	g, err := gameFromInput(in)
	if err != nil {
		return nil, err
	}
	g.ID = id
	return s.games.Update(ctx, *g)
}

func (s *Service) DeleteGame(ctx context.Context, id string) error {
	return s.games.Delete(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.InvalidInput("name required")
	}
	return s.categories.Create(ctx, categoryrepo.CreateInput{Name: name, Description: in.Description})
}

func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.InvalidInput("name required")
	}
	return s.categories.Update(ctx, id, categoryrepo.CreateInput{Name: name, Description: in.Description})
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

func gameFromInput(in GameInput) (*domain.Game, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.InvalidInput("title required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return nil, domain.InvalidInput("categoryId required")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Game{
		Title:       title,
		Description: in.Description,
		Price:       price,
		ReleaseDate: strings.TrimSpace(in.ReleaseDate),
		CategoryID:  in.CategoryID,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}, nil
}

func validSort(sort string) bool {
	switch sort {
	case domain.SortPriceAsc, domain.SortPriceDesc, domain.SortTitleAsc, domain.SortTitleDesc:
		return true
	}
	return false
}
