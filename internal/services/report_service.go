package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
	"gym_admin_backend/pkg/utils"
)

// --- Custom Service Errors for Reports ---
var (
	ErrReportValidation = errors.New("report parameters validation error")
)

// --- ReportService Interface ---
type ReportService interface {
	GetCashReport(month, year int) (*models.CashReport, error)
	GetStaffHoursReport(month, year int, staffType string) (*models.StaffHoursReport, error)
}

// --- reportService Implementation ---
type reportService struct {
	cashRepo  repositories.CashRepository
	staffRepo repositories.StaffRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(cashRepo repositories.CashRepository, staffRepo repositories.StaffRepository) ReportService {
	return &reportService{
		cashRepo:  cashRepo,
		staffRepo: staffRepo,
	}
}

// monthRange returns the half-open interval [first of month, first of next
// month) in local time.
func monthRange(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 1, 0)
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrReportValidation)
	}
	if year < 2000 || year > 2100 {
		return fmt.Errorf("%w: year is out of range", ErrReportValidation)
	}
	return nil
}

// GetCashReport aggregates the ledger for one calendar month: totals, a
// per-day breakdown and a per-responsible breakdown.
func (s *reportService) GetCashReport(month, year int) (*models.CashReport, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	from, to := monthRange(month, year)
	transactions, err := s.cashRepo.GetTransactionsForPeriod(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash transactions: %w", err)
	}

	report := &models.CashReport{
		Month:        month,
		Year:         year,
		Days:         []models.DailyCashSummary{},
		Responsibles: []models.ResponsibleCashSummary{},
	}

	days := map[string]*models.DailyCashSummary{}
	responsibles := map[string]*models.ResponsibleCashSummary{}

	for i := range transactions {
		txn := &transactions[i]

		date := txn.TxnDate.In(time.Local).Format(utils.DateLayout)
		daySummary, ok := days[date]
		if !ok {
			daySummary = &models.DailyCashSummary{Date: date}
			days[date] = daySummary
		}
		respSummary, ok := responsibles[txn.ResponsibleName]
		if !ok {
			respSummary = &models.ResponsibleCashSummary{Name: txn.ResponsibleName}
			responsibles[txn.ResponsibleName] = respSummary
		}

		daySummary.Transactions = append(daySummary.Transactions, *txn)
		respSummary.TransactionCount++
		switch txn.TxnType {
		case models.TxnTypeIncome:
			report.TotalIncome += txn.Amount
			daySummary.Income += txn.Amount
			respSummary.Income += txn.Amount
		case models.TxnTypeExpense:
			report.TotalExpense += txn.Amount
			daySummary.Expense += txn.Amount
			respSummary.Expense += txn.Amount
		}
	}

	report.TotalIncome = utils.Round2(report.TotalIncome)
	report.TotalExpense = utils.Round2(report.TotalExpense)
	report.NetBalance = utils.Round2(report.TotalIncome - report.TotalExpense)

	for _, d := range days {
		d.Income = utils.Round2(d.Income)
		d.Expense = utils.Round2(d.Expense)
		d.Balance = utils.Round2(d.Income - d.Expense)
		report.Days = append(report.Days, *d)
	}
	for _, r := range responsibles {
		r.Income = utils.Round2(r.Income)
		r.Expense = utils.Round2(r.Expense)
		r.Balance = utils.Round2(r.Income - r.Expense)
		report.Responsibles = append(report.Responsibles, *r)
	}

	// Most recent day first; busiest responsible first, ties by name so the
	// order is deterministic.
	sort.SliceStable(report.Days, func(i, j int) bool {
		return report.Days[i].Date > report.Days[j].Date
	})
	sort.SliceStable(report.Responsibles, func(i, j int) bool {
		a, b := report.Responsibles[i], report.Responsibles[j]
		if a.TransactionCount != b.TransactionCount {
			return a.TransactionCount > b.TransactionCount
		}
		return a.Name < b.Name
	})

	return report, nil
}

// GetStaffHoursReport sums the completed work sessions of one staff type over
// a calendar month. Staff without any completed session in the month are
// absent from the report.
func (s *reportService) GetStaffHoursReport(month, year int, staffType string) (*models.StaffHoursReport, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if !models.IsValidStaffType(staffType) {
		return nil, fmt.Errorf("%w: staff_type must be one of TRAINER, CLEANING", ErrReportValidation)
	}

	from, to := monthRange(month, year)
	sessions, err := s.staffRepo.GetCompletedSessionsForPeriod(staffType, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	report := &models.StaffHoursReport{
		Month:     month,
		Year:      year,
		StaffType: staffType,
		Staff:     []models.StaffHoursSummary{},
	}

	staffSummaries := map[int64]*models.StaffHoursSummary{}
	staffDays := map[int64]map[string]*models.StaffDaySummary{}

	for i := range sessions {
		session := &sessions[i]
		if session.Staff == nil || session.TotalHours == nil {
			continue
		}

		summary, ok := staffSummaries[session.StaffID]
		if !ok {
			summary = &models.StaffHoursSummary{
				StaffID:    session.StaffID,
				FullName:   session.Staff.FullName,
				HourlyRate: session.Staff.HourlyRate,
			}
			staffSummaries[session.StaffID] = summary
			staffDays[session.StaffID] = map[string]*models.StaffDaySummary{}
		}

		summary.SessionCount++
		summary.TotalHours += *session.TotalHours

		daySummary, ok := staffDays[session.StaffID][session.SessionDate]
		if !ok {
			daySummary = &models.StaffDaySummary{Date: session.SessionDate}
			staffDays[session.StaffID][session.SessionDate] = daySummary
		}
		daySummary.Sessions = append(daySummary.Sessions, *session)
		daySummary.Hours = utils.Round2(daySummary.Hours + *session.TotalHours)
	}

	for staffID, summary := range staffSummaries {
		summary.TotalHours = utils.Round2(summary.TotalHours)
		summary.TotalPayment = utils.Round2(summary.TotalHours * summary.HourlyRate)
		summary.DaysWorked = len(staffDays[staffID])

		summary.Days = make([]models.StaffDaySummary, 0, len(staffDays[staffID]))
		for _, day := range staffDays[staffID] {
			summary.Days = append(summary.Days, *day)
		}
		sort.SliceStable(summary.Days, func(a, b int) bool {
			return summary.Days[a].Date < summary.Days[b].Date
		})

		report.Staff = append(report.Staff, *summary)
	}

	// Highest payout first, ties by name.
	sort.SliceStable(report.Staff, func(i, j int) bool {
		a, b := report.Staff[i], report.Staff[j]
		if a.TotalPayment != b.TotalPayment {
			return a.TotalPayment > b.TotalPayment
		}
		return a.FullName < b.FullName
	})

	return report, nil
}
