package models

import (
	"context"
	"sort"
	"time"

	"github.com/nusratfurniture/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

type ReportPeriod string

const (
	ReportPeriodDaily   ReportPeriod = "daily"
	ReportPeriodWeekly  ReportPeriod = "weekly"
	ReportPeriodMonthly ReportPeriod = "monthly"
)

// PeriodRange maps a report period onto inclusive date bounds around
// the anchor. Weekly is the Saturday-to-Thursday workshop week, and an
// unknown period degrades to the single anchor day.
func PeriodRange(period ReportPeriod, anchor time.Time) (start, end time.Time) {
	anchor = utils.DateOnly(anchor)
	switch period {
	case ReportPeriodWeekly:
		return utils.SatThuWeekRange(anchor)
	case ReportPeriodMonthly:
		return utils.MonthRange(anchor)
	}
	return anchor, anchor
}

type ChartData struct {
	Labels             []string         `json:"labels"`
	Incoming           []int64          `json:"incoming"`
	Outgoing           []int64          `json:"outgoing"`
	OutgoingByCategory map[string]int64 `json:"outgoing_by_cat"`
	CumulativeNet      []int64          `json:"cumulative_net"`
}

// BuildChartData buckets transactions per day, then clips the series to
// the trailing maxPoints labels. The cumulative net is computed over
// the full range before clipping, so the first visible point already
// carries the earlier days' balance.
func BuildChartData(transactions []Transaction, maxPoints int) *ChartData {

	byDay := map[string]*[2]int64{}
	outgoingByCategory := map[string]int64{}
	for _, transaction := range transactions {
		key := utils.FormatDate(transaction.Date)
		bucket, ok := byDay[key]
		if !ok {
			bucket = &[2]int64{}
			byDay[key] = bucket
		}
		if transaction.Type == TransactionTypeIncoming {
			bucket[0] += transaction.AmountPKR
		} else {
			bucket[1] += transaction.AmountPKR
		}
		if transaction.Type == TransactionTypeOutgoing {
			outgoingByCategory[transaction.Category] += transaction.AmountPKR
		}
	}

	labels := make([]string, 0, len(byDay))
	for key := range byDay {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	incoming := make([]int64, 0, len(labels))
	outgoing := make([]int64, 0, len(labels))
	cumulativeNet := make([]int64, 0, len(labels))
	var running int64
	for _, label := range labels {
		bucket := byDay[label]
		incoming = append(incoming, bucket[0])
		outgoing = append(outgoing, bucket[1])
		running += bucket[0] - bucket[1]
		cumulativeNet = append(cumulativeNet, running)
	}

	if maxPoints > 0 && len(labels) > maxPoints {
		cut := len(labels) - maxPoints
		labels = labels[cut:]
		incoming = incoming[cut:]
		outgoing = outgoing[cut:]
		cumulativeNet = cumulativeNet[cut:]
	}

	return &ChartData{
		Labels:             labels,
		Incoming:           incoming,
		Outgoing:           outgoing,
		OutgoingByCategory: outgoingByCategory,
		CumulativeNet:      cumulativeNet,
	}
}

type CategoryShare struct {
	Category string          `json:"category"`
	Amount   int64           `json:"amount"`
	Share    decimal.Decimal `json:"share"`
}

// OutgoingCategoryShares turns the outgoing-by-category buckets into
// percentage shares rounded to two places, largest spender first.
func OutgoingCategoryShares(outgoingByCategory map[string]int64) []CategoryShare {

	var total int64
	for _, amount := range outgoingByCategory {
		total += amount
	}

	shares := make([]CategoryShare, 0, len(outgoingByCategory))
	for category, amount := range outgoingByCategory {
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(amount).
				Div(decimal.NewFromInt(total)).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
		shares = append(shares, CategoryShare{Category: category, Amount: amount, Share: share})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// chartPoints is how many daily buckets the dashboard chart shows.
const chartPoints = 31

type ReportResult struct {
	Period         ReportPeriod             `json:"period"`
	Anchor         string                   `json:"anchor"`
	Start          string                   `json:"start"`
	End            string                   `json:"end"`
	Items          []Transaction            `json:"items"`
	Totals         *TransactionTotalsResult `json:"totals"`
	Chart          *ChartData               `json:"chart"`
	CategoryShares []CategoryShare          `json:"category_shares"`
}

// BuildReport assembles the dashboard report for one period: filtered
// rows, totals over the same filter, and the daily chart series.
func BuildReport(ctx context.Context, period ReportPeriod, anchor time.Time, filter TransactionFilter) (*ReportResult, error) {

	switch period {
	case ReportPeriodDaily, ReportPeriodWeekly, ReportPeriodMonthly:
	default:
		period = ReportPeriodDaily
	}

	start, end := PeriodRange(period, anchor)
	filter.FromDate = &start
	filter.ToDate = &end

	items, err := ListTransactions(ctx, filter, 2000)
	if err != nil {
		return nil, err
	}
	totals, err := TransactionTotals(ctx, filter)
	if err != nil {
		return nil, err
	}

	chart := BuildChartData(items, chartPoints)

	return &ReportResult{
		Period:         period,
		Anchor:         utils.FormatDate(utils.DateOnly(anchor)),
		Start:          utils.FormatDate(start),
		End:            utils.FormatDate(end),
		Items:          items,
		Totals:         totals,
		Chart:          chart,
		CategoryShares: OutgoingCategoryShares(chart.OutgoingByCategory),
	}, nil
}
