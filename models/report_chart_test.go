package models_test

import (
	"testing"
	"time"

	"github.com/nusratfurniture/workshop_backend/models"
	"github.com/shopspring/decimal"
)

func dayTx(day int, txType models.TransactionType, amount int64, category string) models.Transaction {
	return models.Transaction{
		Type:      txType,
		Date:      time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		AmountPKR: amount,
		Category:  category,
	}
}

func TestPeriodRange(t *testing.T) {
	// 2026-08-12 is a Wednesday; the workshop week around it runs
	// Saturday the 8th through Thursday the 13th.
	anchor := time.Date(2026, 8, 12, 15, 30, 0, 0, time.UTC)

	start, end := models.PeriodRange(models.ReportPeriodWeekly, anchor)
	if start != time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC) {
		t.Errorf("weekly start = %v", start)
	}
	if end != time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC) {
		t.Errorf("weekly end = %v", end)
	}

	start, end = models.PeriodRange(models.ReportPeriodMonthly, anchor)
	if start != time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) || end != time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) {
		t.Errorf("monthly range = %v..%v", start, end)
	}

	start, end = models.PeriodRange(models.ReportPeriodDaily, anchor)
	if start != end || start != time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC) {
		t.Errorf("daily range = %v..%v", start, end)
	}

	start, end = models.PeriodRange(models.ReportPeriod("bogus"), anchor)
	if start != end {
		t.Errorf("unknown period should collapse to the anchor day: %v..%v", start, end)
	}
}

func TestBuildChartDataBucketsAndClips(t *testing.T) {
	chart := models.BuildChartData([]models.Transaction{
		dayTx(1, models.TransactionTypeIncoming, 10000, "Client"),
		dayTx(1, models.TransactionTypeOutgoing, 4000, "Wood"),
		dayTx(2, models.TransactionTypeOutgoing, 1000, "Misc"),
		dayTx(3, models.TransactionTypeIncoming, 500, "Other Income"),
		dayTx(3, models.TransactionTypeOutgoing, 2000, "Wood"),
	}, 2)

	if len(chart.Labels) != 2 {
		t.Fatalf("expected 2 labels after clipping, got %v", chart.Labels)
	}
	if chart.Labels[0] != "2026-08-02" || chart.Labels[1] != "2026-08-03" {
		t.Fatalf("unexpected labels %v", chart.Labels)
	}

	// Day 1 was clipped off, but its net (+6000) must still be inside
	// the first visible cumulative point.
	if chart.CumulativeNet[0] != 5000 {
		t.Errorf("cumulative net at first visible point = %d, want 5000", chart.CumulativeNet[0])
	}
	if chart.CumulativeNet[1] != 3500 {
		t.Errorf("cumulative net at last point = %d, want 3500", chart.CumulativeNet[1])
	}

	// Category buckets cover the full range, not just the visible window.
	if chart.OutgoingByCategory["Wood"] != 6000 {
		t.Errorf("Wood bucket = %d, want 6000", chart.OutgoingByCategory["Wood"])
	}
	if chart.OutgoingByCategory["Misc"] != 1000 {
		t.Errorf("Misc bucket = %d, want 1000", chart.OutgoingByCategory["Misc"])
	}
}

func TestBuildChartDataNoClipWhenShort(t *testing.T) {
	chart := models.BuildChartData([]models.Transaction{
		dayTx(5, models.TransactionTypeIncoming, 100, "Client"),
	}, 31)
	if len(chart.Labels) != 1 || chart.Labels[0] != "2026-08-05" {
		t.Fatalf("unexpected labels %v", chart.Labels)
	}
	if chart.Incoming[0] != 100 || chart.Outgoing[0] != 0 {
		t.Fatalf("unexpected series incoming=%v outgoing=%v", chart.Incoming, chart.Outgoing)
	}
}

func TestOutgoingCategoryShares(t *testing.T) {
	shares := models.OutgoingCategoryShares(map[string]int64{
		"Wood": 600,
		"Foam": 300,
		"Misc": 100,
	})

	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	if shares[0].Category != "Wood" || shares[1].Category != "Foam" || shares[2].Category != "Misc" {
		t.Fatalf("unexpected order: %+v", shares)
	}
	if !shares[0].Share.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Wood share = %s, want 60", shares[0].Share)
	}
	if !shares[2].Share.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Misc share = %s, want 10", shares[2].Share)
	}
}

func TestOutgoingCategorySharesTieBreaksByName(t *testing.T) {
	shares := models.OutgoingCategoryShares(map[string]int64{
		"Wood":     500,
		"Hardware": 500,
	})
	if shares[0].Category != "Hardware" {
		t.Fatalf("equal amounts should sort by category name, got %+v", shares)
	}
}

func TestOutgoingCategorySharesEmpty(t *testing.T) {
	if got := models.OutgoingCategoryShares(nil); len(got) != 0 {
		t.Fatalf("expected no shares, got %+v", got)
	}
}
