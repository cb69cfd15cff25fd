package domain

import "strings"

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	Calories int `json:"calories" yaml:"calories"`
	Protein  int `json:"protein" yaml:"protein"`
	Carbs    int `json:"carbs" yaml:"carbs"`
	Fat      int `json:"fat" yaml:"fat"`
}

// Recipe is a catalogue recipe. Category is one of vegana, cetogenica,
// lowcarb; Difficulty one of easy, medium, hard.
type Recipe struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Category      string    `json:"category" yaml:"category"`
	Ingredients   []string  `json:"ingredients" yaml:"ingredients"`
	Instructions  []string  `json:"instructions" yaml:"instructions"`
	Nutrition     Nutrition `json:"nutrition" yaml:"nutrition"`
	Substitutions []string  `json:"substitutions" yaml:"substitutions"`
	Image         string    `json:"image" yaml:"image"`
	PrepTime      int       `json:"prepTime" yaml:"prepTime"`
	Difficulty    string    `json:"difficulty" yaml:"difficulty"`
}

// ExerciseVideo is a catalogue workout video. Duration is in minutes.
type ExerciseVideo struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	VideoURL     string `json:"videoUrl" yaml:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl" yaml:"thumbnailUrl"`
	Duration     int    `json:"duration" yaml:"duration"`
	Category     string `json:"category" yaml:"category"`
	Difficulty   string `json:"difficulty" yaml:"difficulty"`
	IsPremium    bool   `json:"isPremium" yaml:"isPremium"`
}

// CatalogFilter narrows a catalogue listing. Empty fields and "all" match
// everything; Search is a case-insensitive substring match.
type CatalogFilter struct {
	Search     string
	Category   string
	Difficulty string
}

func matchesOption(want, got string) bool {
	return want == "" || want == "all" || want == got
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// FilterRecipes matches Search against the name and every ingredient.
func FilterRecipes(recipes []Recipe, f CatalogFilter) []Recipe {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !matchesOption(f.Category, r.Category) || !matchesOption(f.Difficulty, r.Difficulty) {
			continue
		}
		if needle != "" && !recipeMatches(r, needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func recipeMatches(r Recipe, needle string) bool {
	if containsFold(r.Name, needle) {
		return true
	}
	for _, ing := range r.Ingredients {
		if containsFold(ing, needle) {
			return true
		}
	}
	return false
}

// FilterExercises matches Search against the title and description.
func FilterExercises(videos []ExerciseVideo, f CatalogFilter) []ExerciseVideo {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]ExerciseVideo, 0, len(videos))
	for _, v := range videos {
		if !matchesOption(f.Category, v.Category) || !matchesOption(f.Difficulty, v.Difficulty) {
			continue
		}
		if needle != "" && !containsFold(v.Title, needle) && !containsFold(v.Description, needle) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// RecipeCategoryCounts counts recipes per category, plus "all".
func RecipeCategoryCounts(recipes []Recipe) map[string]int {
	counts := map[string]int{"all": len(recipes)}
	for _, r := range recipes {
		counts[r.Category]++
	}
	return counts
}
