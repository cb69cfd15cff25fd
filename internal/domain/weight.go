package domain

import (
	"context"
	"sort"
	"time"
)

// WeightEntry represents a single weight check-in. Weight is always stored in kg.
type WeightEntry struct {
	ID     string    `json:"id"`
	UserID int64     `json:"userId"`
	Weight float64   `json:"weight"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes,omitempty"`
}

// WeightRepository is the port for weight persistence. ListWeightEntries
// returns entries in insertion order.
type WeightRepository interface {
	AddWeightEntry(ctx context.Context, e WeightEntry) error
	UpdateWeightEntry(ctx context.Context, userID int64, id string, weight float64, notes string) (bool, error)
	DeleteWeightEntry(ctx context.Context, userID int64, id string) (bool, error)
	ListWeightEntries(ctx context.Context, userID int64) ([]WeightEntry, error)
}

// SortedByDateDesc returns a copy of entries ordered newest first.
func SortedByDateDesc(entries []WeightEntry) []WeightEntry {
	out := make([]WeightEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// TotalLoss returns first minus last weight in stored order, floored at zero.
func TotalLoss(entries []WeightEntry) float64 {
	if len(entries) < 2 {
		return 0
	}
	return max(0, entries[0].Weight-entries[len(entries)-1].Weight)
}
