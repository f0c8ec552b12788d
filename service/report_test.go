package service

import (
	"testing"
	"time"

	"nairatrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		spent      float64
		percentage float64
		status     string
	}{
		{"untouched", 10000, 0, 0, BudgetStatusOnTrack},
		{"below warning", 10000, 6999, 69.99, BudgetStatusOnTrack},
		{"warning boundary", 10000, 7000, 70, BudgetStatusWarning},
		{"critical boundary", 10000, 9000, 90, BudgetStatusCritical},
		{"almost over", 50000, 45000, 90, BudgetStatusCritical},
		{"exactly spent", 10000, 10000, 100, BudgetStatusOver},
		{"overspent", 10000, 15000, 150, BudgetStatusOver},
		{"zero amount", 0, 500, 0, BudgetStatusOnTrack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ClassifyBudget(tt.amount, tt.spent)
			assert.InDelta(t, tt.percentage, p.Percentage, 0.001)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.spent, p.Spent)
			assert.Equal(t, tt.amount-tt.spent, p.Remaining)
		})
	}
}

func TestPeriodStart(t *testing.T) {
	// Thursday 2026-08-20
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

	weekly := PeriodStart(models.BudgetPeriodWeekly, now)
	assert.Equal(t, "2026-08-17", weekly.Format("2006-01-02")) // Monday
	assert.Equal(t, time.Monday, weekly.Weekday())

	monthly := PeriodStart(models.BudgetPeriodMonthly, now)
	assert.Equal(t, "2026-08-01", monthly.Format("2006-01-02"))

	yearly := PeriodStart(models.BudgetPeriodYearly, now)
	assert.Equal(t, "2026-01-01", yearly.Format("2006-01-02"))

	// A Monday is its own week start
	monday := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-17", PeriodStart(models.BudgetPeriodWeekly, monday).Format("2006-01-02"))
}

func TestPeriodDays(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, PeriodDays(models.BudgetPeriodWeekly, now))
	assert.Equal(t, 28, PeriodDays(models.BudgetPeriodMonthly, now)) // Feb 2026
	assert.Equal(t, 365, PeriodDays(models.BudgetPeriodYearly, now))

	aug := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, PeriodDays(models.BudgetPeriodMonthly, aug))
}

func TestSavingsRate(t *testing.T) {
	assert.Equal(t, 0.0, SavingsRate(0, 5000))
	assert.InDelta(t, 25.0, SavingsRate(100000, 75000), 0.001)
	assert.InDelta(t, -50.0, SavingsRate(100000, 150000), 0.001)
	assert.InDelta(t, 100.0, SavingsRate(100000, 0), 0.001)
}

func TestChangePercent(t *testing.T) {
	assert.Equal(t, 100.0, ChangePercent(0, 50000))
	assert.Equal(t, 0.0, ChangePercent(0, 0))
	assert.Equal(t, 0.0, ChangePercent(0, -100))
	assert.InDelta(t, 10.0, ChangePercent(100000, 110000), 0.001)
	assert.InDelta(t, -20.0, ChangePercent(100000, 80000), 0.001)
}

func TestBuildNetWorthSeries(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	// One debit of 30000 today, balance now 100000. Yesterday's close must
	// have been 130000.
	txns := []models.Transaction{
		{Date: today, Amount: 30000, Type: models.TransactionTypeDebit},
	}
	points := BuildNetWorthSeries(100000, txns, today, 30)
	require.Len(t, points, 30)
	assert.Equal(t, "2026-08-31", points[29].Date)
	assert.Equal(t, 100000.0, points[29].NetWorth)
	assert.Equal(t, "2026-08-30", points[28].Date)
	assert.Equal(t, 130000.0, points[28].NetWorth)
	// No activity further back, the series is flat
	assert.Equal(t, 130000.0, points[0].NetWorth)
	assert.Equal(t, "2026-08-02", points[0].Date)
}

func TestBuildNetWorthSeries_CreditAndDebit(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	txns := []models.Transaction{
		{Date: today, Amount: 50000, Type: models.TransactionTypeCredit},
		{Date: yesterday, Amount: 20000, Type: models.TransactionTypeDebit},
	}
	points := BuildNetWorthSeries(200000, txns, today, 30)
	// Undo today's credit: close of yesterday was 150000
	assert.Equal(t, 150000.0, points[28].NetWorth)
	// Undo yesterday's debit: close of the day before was 170000
	assert.Equal(t, 170000.0, points[27].NetWorth)
}

func TestBucketCashFlow_Monthly(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Amount: 500000, Type: models.TransactionTypeCredit},
		{Date: time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), Amount: 120000, Type: models.TransactionTypeDebit},
		{Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Amount: 80000, Type: models.TransactionTypeDebit},
		// outside the window, must be ignored
		{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 999999, Type: models.TransactionTypeDebit},
	}

	buckets := BucketCashFlow(txns, "monthly", now)
	require.Len(t, buckets, 6)
	assert.Equal(t, "2026-03", buckets[0].Period)
	assert.Equal(t, "2026-08", buckets[5].Period)

	assert.Equal(t, 500000.0, buckets[5].Income)
	assert.Equal(t, 120000.0, buckets[5].Expenses)
	assert.Equal(t, 380000.0, buckets[5].Net)

	assert.Equal(t, 80000.0, buckets[4].Expenses)
	assert.Equal(t, -80000.0, buckets[4].Net)

	assert.Equal(t, 0.0, buckets[0].Income)
	assert.Equal(t, 0.0, buckets[0].Expenses)
}

func TestBucketCashFlow_Yearly(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 1000, Type: models.TransactionTypeCredit},
		{Date: time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), Amount: 400, Type: models.TransactionTypeDebit},
	}

	buckets := BucketCashFlow(txns, "yearly", now)
	require.Len(t, buckets, 5)
	assert.Equal(t, "2022", buckets[0].Period)
	assert.Equal(t, "2026", buckets[4].Period)
	assert.Equal(t, 400.0, buckets[0].Expenses)
	assert.Equal(t, 1000.0, buckets[4].Income)
}
