package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vivaleve/internal/domain"
)

var testRecipes = []domain.Recipe{
	{ID: "1", Name: "Bowl de Quinoa", Category: "vegana", Difficulty: "easy", Ingredients: []string{"1 xícara de quinoa", "1 cenoura"}},
	{ID: "2", Name: "Salmão Grelhado", Category: "cetogenica", Difficulty: "medium", Ingredients: []string{"Salmão", "Aspargos"}},
	{ID: "3", Name: "Salada de Atum", Category: "lowcarb", Difficulty: "easy", Ingredients: []string{"Atum", "Abacate"}},
}

func recipeIDs(rs []domain.Recipe) []string {
	out := []string{}
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterRecipes(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.CatalogFilter
		want   []string
	}{
		{"no filter", domain.CatalogFilter{}, []string{"1", "2", "3"}},
		{"all category", domain.CatalogFilter{Category: "all"}, []string{"1", "2", "3"}},
		{"category", domain.CatalogFilter{Category: "vegana"}, []string{"1"}},
		{"difficulty", domain.CatalogFilter{Difficulty: "easy"}, []string{"1", "3"}},
		{"search name", domain.CatalogFilter{Search: "SALMÃO"}, []string{"2"}},
		{"search ingredient", domain.CatalogFilter{Search: "abacate"}, []string{"3"}},
		{"search and category", domain.CatalogFilter{Search: "sal", Category: "lowcarb"}, []string{"3"}},
		{"no match", domain.CatalogFilter{Search: "pizza"}, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := recipeIDs(domain.FilterRecipes(testRecipes, tc.filter))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("FilterRecipes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterExercises(t *testing.T) {
	videos := []domain.ExerciseVideo{
		{ID: "1", Title: "Cardio HIIT", Description: "queimar gordura", Category: "hiit", Difficulty: "beginner"},
		{ID: "2", Title: "Yoga", Description: "Flexibilidade e respiração", Category: "flexibility", Difficulty: "beginner"},
		{ID: "3", Title: "Força em Casa", Description: "sem equipamentos", Category: "strength", Difficulty: "advanced"},
	}
	got := domain.FilterExercises(videos, domain.CatalogFilter{Search: "respiração"})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("search description: got %+v", got)
	}
	got = domain.FilterExercises(videos, domain.CatalogFilter{Difficulty: "beginner", Category: "hiit"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("category+difficulty: got %+v", got)
	}
}

func TestRecipeCategoryCounts(t *testing.T) {
	want := map[string]int{"all": 3, "vegana": 1, "cetogenica": 1, "lowcarb": 1}
	if diff := cmp.Diff(want, domain.RecipeCategoryCounts(testRecipes)); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}
