// Package catalog loads the static recipe and exercise catalogue shipped
// with the binary.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"vivaleve/internal/domain"
)

//go:embed data/*.yaml
var files embed.FS

// Catalog is an immutable, in-memory view of the catalogue.
type Catalog struct {
	recipes   []domain.Recipe
	exercises []domain.ExerciseVideo
}

// Load decodes the embedded catalogue files.
func Load() (*Catalog, error) {
	c := &Catalog{}
	if err := decode("data/recipes.yaml", &c.recipes); err != nil {
		return nil, err
	}
	if err := decode("data/exercises.yaml", &c.exercises); err != nil {
		return nil, err
	}
	return c, nil
}

// New builds a catalogue from explicit data, mainly for tests.
func New(recipes []domain.Recipe, exercises []domain.ExerciseVideo) *Catalog {
	return &Catalog{recipes: recipes, exercises: exercises}
}

func decode(name string, v any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Recipes returns every recipe in catalogue order. Callers must not modify
// the returned slice.
func (c *Catalog) Recipes() []domain.Recipe { return c.recipes }

// Exercises returns every exercise video in catalogue order.
func (c *Catalog) Exercises() []domain.ExerciseVideo { return c.exercises }

// Recipe looks a recipe up by id.
func (c *Catalog) Recipe(id string) (domain.Recipe, bool) {
	for _, r := range c.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Recipe{}, false
}
