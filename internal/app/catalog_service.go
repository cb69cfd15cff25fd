package app

import (
	"errors"
	"fmt"
	"time"

	"vivaleve/internal/domain"
)

// FreeRecipeLimit caps the recipes listed for users without premium access.
const FreeRecipeLimit = 10

// ErrRecipeNotFound indicates that no recipe has the requested id.
var ErrRecipeNotFound = errors.New("recipe not found")

// Catalog is the read-only source of recipes and exercise videos.
type Catalog interface {
	Recipes() []domain.Recipe
	Recipe(id string) (domain.Recipe, bool)
	Exercises() []domain.ExerciseVideo
}

// CatalogService serves the recipe and exercise catalogue with plan rules.
type CatalogService struct {
	catalog Catalog
	now     func() time.Time
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(c Catalog) *CatalogService {
	return &CatalogService{catalog: c, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

// RecipeList is a filtered recipe listing. Limited reports that the
// free-plan cap removed results.
type RecipeList struct {
	Recipes []domain.Recipe `json:"recipes"`
	Total   int             `json:"total"`
	Limited bool            `json:"limited"`
}

// Recipes filters the catalogue for the user, applying the free-plan cap.
func (s *CatalogService) Recipes(user *domain.User, f domain.CatalogFilter) RecipeList {
	matched := domain.FilterRecipes(s.catalog.Recipes(), f)
	list := RecipeList{Recipes: matched, Total: len(matched)}
	if !user.HasPremiumAccess(s.now()) && len(matched) > FreeRecipeLimit {
		list.Recipes = matched[:FreeRecipeLimit]
		list.Limited = true
	}
	return list
}

// Recipe returns a single recipe.
func (s *CatalogService) Recipe(id string) (domain.Recipe, error) {
	r, ok := s.catalog.Recipe(id)
	if !ok {
		return domain.Recipe{}, ErrRecipeNotFound
	}
	return r, nil
}

// Exercises filters the exercise videos. Premium access is required.
func (s *CatalogService) Exercises(user *domain.User, f domain.CatalogFilter) ([]domain.ExerciseVideo, error) {
	if !user.HasPremiumAccess(s.now()) {
		return nil, fmt.Errorf("%w: premium plan required", ErrForbidden)
	}
	return domain.FilterExercises(s.catalog.Exercises(), f), nil
}

// RecipeAdminView is the uncapped recipe listing with category counts.
type RecipeAdminView struct {
	Recipes []domain.Recipe `json:"recipes"`
	Counts  map[string]int  `json:"counts"`
}

// AdminRecipes lists recipes without the plan cap. Counts cover the whole
// catalogue, not only the filtered result.
func (s *CatalogService) AdminRecipes(f domain.CatalogFilter) RecipeAdminView {
	all := s.catalog.Recipes()
	return RecipeAdminView{
		Recipes: domain.FilterRecipes(all, f),
		Counts:  domain.RecipeCategoryCounts(all),
	}
}
