package api

import (
	"strconv"
	"time"

	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves computed reports. Everything here is derived from the
// transaction and account tables at request time.
type ReportHandler struct{}

// NewReportHandler creates the report handler.
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// Monthly returns the income/expense summary and category breakdown for one
// month.
// @Summary Monthly report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "year, defaults to current"
// @Param month query int false "month 1-12, defaults to current"
// @Success 200 {object} Response{data=service.MonthlyReport}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 2100 {
			BadRequest(c, "invalid year")
			return
		}
		year = v
	}
	if s := c.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			BadRequest(c, "invalid month")
			return
		}
		month = v
	}

	Success(c, service.ComputeMonthlyReport(database.DB, userID, year, month))
}

// NetWorth returns the current net worth and a 30 day history series.
// @Summary Net worth report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.NetWorthReport}
// @Failure 401 {object} Response
// @Router /api/v1/reports/net-worth [get]
func (h *ReportHandler) NetWorth(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	Success(c, service.ComputeNetWorth(database.DB, userID, time.Now()))
}

// CashFlow returns income vs expenses bucketed by month or year.
// @Summary Cash flow report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param period query string false "monthly (6 buckets) or yearly (5 buckets)" Enums(monthly,yearly) default(monthly)
// @Success 200 {object} Response{data=[]service.CashFlowBucket}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/reports/cash-flow [get]
func (h *ReportHandler) CashFlow(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	period := c.DefaultQuery("period", "monthly")
	if period != "monthly" && period != "yearly" {
		BadRequest(c, "invalid period")
		return
	}

	Success(c, service.ComputeCashFlow(database.DB, userID, period, time.Now()))
}

// SpendingTrends returns the last six months of spending with the top
// category per month.
// @Summary Spending trends
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.SpendingTrend}
// @Failure 401 {object} Response
// @Router /api/v1/reports/spending-trends [get]
func (h *ReportHandler) SpendingTrends(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	Success(c, service.ComputeSpendingTrends(database.DB, userID, time.Now()))
}
