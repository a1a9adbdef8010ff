package models

// DailyCashSummary is the per-day slice of a monthly cash report.
type DailyCashSummary struct {
	Date         string            `json:"date"` // YYYY-MM-DD
	Transactions []CashTransaction `json:"transactions"`
	Income       float64           `json:"income"`
	Expense      float64           `json:"expense"`
	Balance      float64           `json:"balance"`
}

// ResponsibleCashSummary aggregates the ledger per responsible party.
type ResponsibleCashSummary struct {
	Name             string  `json:"name"`
	TransactionCount int     `json:"transaction_count"`
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
	Balance          float64 `json:"balance"`
}

// CashReport is the monthly cash aggregation: grand totals plus per-day and
// per-responsible breakdowns.
type CashReport struct {
	Month        int                      `json:"month"` // 1-indexed
	Year         int                      `json:"year"`
	TotalIncome  float64                  `json:"total_income"`
	TotalExpense float64                  `json:"total_expense"`
	NetBalance   float64                  `json:"net_balance"`
	Days         []DailyCashSummary       `json:"days"`
	Responsibles []ResponsibleCashSummary `json:"responsibles"`
}

// StaffDaySummary groups one staff member's sessions for a single day.
type StaffDaySummary struct {
	Date     string         `json:"date"` // YYYY-MM-DD
	Sessions []StaffSession `json:"sessions"`
	Hours    float64        `json:"hours"`
}

// StaffHoursSummary is one staff member's monthly hours and computed pay.
// Staff with no completed sessions in the period are omitted from reports.
type StaffHoursSummary struct {
	StaffID      int64             `json:"staff_id"`
	FullName     string            `json:"full_name"`
	HourlyRate   float64           `json:"hourly_rate"`
	TotalHours   float64           `json:"total_hours"`
	TotalPayment float64           `json:"total_payment"`
	SessionCount int               `json:"session_count"`
	DaysWorked   int               `json:"days_worked"`
	Days         []StaffDaySummary `json:"days"`
}

// StaffHoursReport is the monthly pay report for one staff type.
type StaffHoursReport struct {
	Month     int                 `json:"month"` // 1-indexed
	Year      int                 `json:"year"`
	StaffType string              `json:"staff_type"`
	Staff     []StaffHoursSummary `json:"staff"`
}
