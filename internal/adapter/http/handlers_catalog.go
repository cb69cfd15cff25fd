package adapthttp

import (
	"errors"
	"net/http"

	"vivaleve/internal/domain"
)

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	list := s.svc.Catalog.Recipes(userFromContext(r.Context()), catalogFilter(r))
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	recipe, err := s.svc.Catalog.Recipe(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	videos, err := s.svc.Catalog.Exercises(userFromContext(r.Context()), catalogFilter(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": videos})
}

func (s *Server) handleBMIRanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": domain.BMIBands})
}

func (s *Server) handleBMI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var body struct {
		WeightKg float64 `json:"weightKg"`
		HeightCm float64 `json:"heightCm"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.WeightKg <= 0 || body.HeightCm <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("weightKg and heightCm must be > 0"))
		return
	}
	writeJSON(w, http.StatusOK, domain.CalculateBMI(body.WeightKg, body.HeightCm/100))
}
