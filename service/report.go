package service

import (
	"time"

	"nairatrack/models"

	"gorm.io/gorm"
)

// Budget status tiers, classified from the spent percentage.
const (
	BudgetStatusOnTrack  = "on_track"
	BudgetStatusWarning  = "warning"
	BudgetStatusCritical = "critical"
	BudgetStatusOver     = "over"
)

// BudgetProgress is the computed state of one budget in its current period.
type BudgetProgress struct {
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// BudgetProgressDetail extends BudgetProgress with pacing numbers for the
// dedicated progress endpoint.
type BudgetProgressDetail struct {
	BudgetProgress
	DailyAverage   float64 `json:"daily_average"`
	ProjectedTotal float64 `json:"projected_total"`
	DaysRemaining  int     `json:"days_remaining"`
}

// MonthlySummary aggregates one calendar month.
type MonthlySummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Net           float64 `json:"net"`
	SavingsRate   float64 `json:"savings_rate"`
}

// CategorySpend is one slice of the monthly spending breakdown.
type CategorySpend struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"category_name"`
	Color      string  `json:"category_color"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// MonthlyReport is the /reports/monthly payload.
type MonthlyReport struct {
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	Summary            MonthlySummary  `json:"summary"`
	SpendingByCategory []CategorySpend `json:"spending_by_category"`
}

// NetWorthPoint is one day of the reconstructed net-worth series.
type NetWorthPoint struct {
	Date     string  `json:"date"`
	NetWorth float64 `json:"net_worth"`
}

// NetWorthReport is the /reports/net-worth payload.
type NetWorthReport struct {
	DataPoints      []NetWorthPoint `json:"data_points"`
	CurrentNetWorth float64         `json:"current_net_worth"`
	ChangePercent   float64         `json:"change_percent"`
}

// CashFlowBucket is one month or year of the cash-flow series.
type CashFlowBucket struct {
	Period   string  `json:"period"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// SpendingTrend is one trailing month of debit totals.
type SpendingTrend struct {
	Month       string  `json:"month"`
	TotalSpent  float64 `json:"total_spent"`
	TopCategory string  `json:"top_category"`
}

// ClassifyBudget computes remaining, percentage and the status tier from a
// budget amount and the spend so far. The percentage is 0 when the amount is
// not positive; the numeric value itself is never clamped.
func ClassifyBudget(amount, spent float64) BudgetProgress {
	var percentage float64
	if amount > 0 {
		percentage = spent / amount * 100
	}
	status := BudgetStatusOnTrack
	switch {
	case percentage >= 100:
		status = BudgetStatusOver
	case percentage >= 90:
		status = BudgetStatusCritical
	case percentage >= 70:
		status = BudgetStatusWarning
	}
	return BudgetProgress{
		Spent:      spent,
		Remaining:  amount - spent,
		Percentage: percentage,
		Status:     status,
	}
}

// PeriodStart returns the first instant of the budget period containing now:
// Monday for weekly, the 1st for monthly, Jan 1 for yearly.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case models.BudgetPeriodWeekly:
		day := now
		for day.Weekday() != time.Monday {
			day = day.AddDate(0, 0, -1)
		}
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	case models.BudgetPeriodYearly:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default: // monthly
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// PeriodDays returns the number of days in the period containing now.
func PeriodDays(period string, now time.Time) int {
	start := PeriodStart(period, now)
	var end time.Time
	switch period {
	case models.BudgetPeriodWeekly:
		end = start.AddDate(0, 0, 7)
	case models.BudgetPeriodYearly:
		end = start.AddDate(1, 0, 0)
	default:
		end = start.AddDate(0, 1, 0)
	}
	return int(end.Sub(start).Hours() / 24)
}

// budgetSpent sums the user's debit transactions for the budget category from
// the start of the current period through now.
func budgetSpent(db *gorm.DB, userID string, budget *models.Budget, now time.Time) float64 {
	start := PeriodStart(budget.Period, now)
	var spent float64
	db.Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, budget.CategoryID, models.TransactionTypeDebit,
			start.Format("2006-01-02"), now.Format("2006-01-02")).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent)
	return spent
}

// ComputeBudgetProgress evaluates one budget for its current period.
func ComputeBudgetProgress(db *gorm.DB, userID string, budget *models.Budget, now time.Time) BudgetProgress {
	return ClassifyBudget(budget.Amount, budgetSpent(db, userID, budget, now))
}

// ComputeBudgetProgressDetail adds pacing: the daily average so far, the
// period total it projects to, and the days left in the period.
func ComputeBudgetProgressDetail(db *gorm.DB, userID string, budget *models.Budget, now time.Time) BudgetProgressDetail {
	progress := ComputeBudgetProgress(db, userID, budget, now)

	start := PeriodStart(budget.Period, now)
	elapsed := int(now.Sub(start).Hours()/24) + 1
	if elapsed < 1 {
		elapsed = 1
	}
	periodDays := PeriodDays(budget.Period, now)
	dailyAverage := progress.Spent / float64(elapsed)

	return BudgetProgressDetail{
		BudgetProgress: progress,
		DailyAverage:   dailyAverage,
		ProjectedTotal: dailyAverage * float64(periodDays),
		DaysRemaining:  periodDays - elapsed,
	}
}

// SavingsRate is net income over income as a percentage, 0 with no income.
func SavingsRate(income, expenses float64) float64 {
	if income == 0 {
		return 0
	}
	return (income - expenses) / income * 100
}

// ComputeMonthlyReport aggregates one calendar month: credit sums as income,
// debit sums as expenses, plus a per-category spend breakdown.
func ComputeMonthlyReport(db *gorm.DB, userID string, year, month int) MonthlyReport {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)

	var income, expenses float64
	db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, models.TransactionTypeCredit, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Select("COALESCE(SUM(amount), 0)").Scan(&income)
	db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, models.TransactionTypeDebit, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Select("COALESCE(SUM(amount), 0)").Scan(&expenses)

	var breakdown []CategorySpend
	db.Model(&models.Transaction{}).
		Select("transactions.category_id, categories.name, categories.color, SUM(transactions.amount) AS amount").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date <= ?",
			userID, models.TransactionTypeDebit, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Group("transactions.category_id, categories.name, categories.color").
		Order("amount DESC").
		Scan(&breakdown)

	for i := range breakdown {
		if expenses > 0 {
			breakdown[i].Percentage = breakdown[i].Amount / expenses * 100
		}
		if breakdown[i].Name == "" {
			breakdown[i].Name = "Uncategorized"
		}
	}

	return MonthlyReport{
		Year:  year,
		Month: month,
		Summary: MonthlySummary{
			TotalIncome:   income,
			TotalExpenses: expenses,
			Net:           income - expenses,
			SavingsRate:   SavingsRate(income, expenses),
		},
		SpendingByCategory: breakdown,
	}
}

// BuildNetWorthSeries reconstructs a daily net-worth series by walking
// backward from today's balance sum and reversing each day's transactions:
// undoing a day's credits and debits yields the balance at the end of the
// previous day. The returned series is chronological with today last.
func BuildNetWorthSeries(current float64, txns []models.Transaction, today time.Time, days int) []NetWorthPoint {
	credits := make(map[string]float64)
	debits := make(map[string]float64)
	for _, t := range txns {
		key := t.Date.Format("2006-01-02")
		if t.Type == models.TransactionTypeCredit {
			credits[key] += t.Amount
		} else {
			debits[key] += t.Amount
		}
	}

	points := make([]NetWorthPoint, days)
	running := current
	points[days-1] = NetWorthPoint{Date: today.Format("2006-01-02"), NetWorth: running}
	for i := 0; i < days-1; i++ {
		day := today.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		running = running - credits[key] + debits[key]
		prev := day.AddDate(0, 0, -1)
		points[days-2-i] = NetWorthPoint{Date: prev.Format("2006-01-02"), NetWorth: running}
	}
	return points
}

// ChangePercent compares a starting value to the current one. A zero start is
// defined as 100% when the current value is positive, else 0%.
func ChangePercent(start, current float64) float64 {
	if start == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - start) / start * 100
}

// ComputeNetWorth builds the 30-point daily net-worth report for a user.
func ComputeNetWorth(db *gorm.DB, userID string, now time.Time) NetWorthReport {
	const days = 30

	var current float64
	db.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&current)

	since := now.AddDate(0, 0, -(days - 1))
	var txns []models.Transaction
	db.Where("user_id = ? AND date >= ? AND date <= ?",
		userID, since.Format("2006-01-02"), now.Format("2006-01-02")).
		Find(&txns)

	points := BuildNetWorthSeries(current, txns, now, days)
	return NetWorthReport{
		DataPoints:      points,
		CurrentNetWorth: current,
		ChangePercent:   ChangePercent(points[0].NetWorth, current),
	}
}

// BucketCashFlow groups transactions into trailing calendar buckets, oldest
// first: 6 months for a monthly period, 5 years for a yearly one.
func BucketCashFlow(txns []models.Transaction, period string, now time.Time) []CashFlowBucket {
	monthly := period != "yearly"
	count := 6
	layout := "2006-01"
	if !monthly {
		count = 5
		layout = "2006"
	}

	buckets := make([]CashFlowBucket, count)
	index := make(map[string]int, count)
	for i := 0; i < count; i++ {
		var label string
		if monthly {
			label = now.AddDate(0, -(count - 1 - i), 0).Format(layout)
		} else {
			label = now.AddDate(-(count - 1 - i), 0, 0).Format(layout)
		}
		buckets[i] = CashFlowBucket{Period: label}
		index[label] = i
	}

	for _, t := range txns {
		i, ok := index[t.Date.Format(layout)]
		if !ok {
			continue
		}
		if t.Type == models.TransactionTypeCredit {
			buckets[i].Income += t.Amount
		} else {
			buckets[i].Expenses += t.Amount
		}
	}
	for i := range buckets {
		buckets[i].Net = buckets[i].Income - buckets[i].Expenses
	}
	return buckets
}

// ComputeCashFlow builds the cash-flow series for a user. period is
// "monthly" (default) or "yearly".
func ComputeCashFlow(db *gorm.DB, userID, period string, now time.Time) []CashFlowBucket {
	var since time.Time
	if period == "yearly" {
		since = time.Date(now.Year()-4, 1, 1, 0, 0, 0, 0, now.Location())
	} else {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		since = start.AddDate(0, -5, 0)
	}

	var txns []models.Transaction
	db.Where("user_id = ? AND date >= ? AND date <= ?",
		userID, since.Format("2006-01-02"), now.Format("2006-01-02")).
		Find(&txns)

	return BucketCashFlow(txns, period, now)
}

// ComputeSpendingTrends returns the trailing six months of debit totals with
// each month's heaviest category.
func ComputeSpendingTrends(db *gorm.DB, userID string, now time.Time) []SpendingTrend {
	trends := make([]SpendingTrend, 0, 6)
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)

		var total float64
		db.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
				userID, models.TransactionTypeDebit,
				monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02")).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total)

		var top struct {
			Name string
		}
		db.Model(&models.Transaction{}).
			Select("categories.name").
			Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
			Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date <= ?",
				userID, models.TransactionTypeDebit,
				monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02")).
			Group("categories.name").
			Order("SUM(transactions.amount) DESC").
			Limit(1).
			Scan(&top)

		trends = append(trends, SpendingTrend{
			Month:       monthStart.Format("2006-01"),
			TotalSpent:  total,
			TopCategory: top.Name,
		})
	}
	return trends
}
