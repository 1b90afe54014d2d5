package models_test

import (
	"testing"

	"github.com/nusratfurniture/workshop_backend/models"
)

func TestComputeStockBadge(t *testing.T) {
	cases := []struct {
		name    string
		qty     int
		reorder int
		want    models.StockBadge
	}{
		{"zero qty is out regardless of reorder level", 0, 10, models.StockBadgeOut},
		{"negative qty is out", -2, 0, models.StockBadgeOut},
		{"at reorder level is low", 5, 5, models.StockBadgeLow},
		{"below reorder level is low", 3, 5, models.StockBadgeLow},
		{"above reorder level is in stock", 6, 5, models.StockBadgeIn},
		{"no reorder level falls back to default threshold", 2, 0, models.StockBadgeLow},
		{"no reorder level at default threshold is in stock", 3, 0, models.StockBadgeIn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := models.ComputeStockBadge(tc.qty, tc.reorder)
			if got != tc.want {
				t.Fatalf("ComputeStockBadge(%d, %d) = %q, want %q", tc.qty, tc.reorder, got, tc.want)
			}
		})
	}
}

func TestBadgeClass(t *testing.T) {
	cases := map[models.StockBadge]string{
		models.StockBadgeIn:          "badge-success",
		models.StockBadgeLow:         "badge-warning",
		models.StockBadgeOut:         "badge-danger",
		models.StockBadgeMadeToOrder: "badge-info",
		models.StockBadge(""):        "badge-secondary",
	}
	for badge, want := range cases {
		if got := models.BadgeClass(badge); got != want {
			t.Errorf("BadgeClass(%q) = %q, want %q", badge, got, want)
		}
	}
}
