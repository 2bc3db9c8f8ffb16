package services

import (
	"fmt"
	"math"
	"time"

	"LavaderoApp/app/models"

	"gorm.io/gorm"
)

// FinanceService combines issued invoices, received invoices and expenses
// into financial summaries. Read-only: every figure comes from a
// range-filtered aggregate query, nothing here mutates state.
type FinanceService struct {
	db *gorm.DB
}

// NewFinanceService creates a new finance service
func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

// FinancialSummary is the computed money picture for a date range
type FinancialSummary struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	TotalIncome   float64 `json:"total_income"`   // issued invoice totals, VAT incl.
	TotalExpenses float64 `json:"total_expenses"` // received invoices + expenses, VAT incl.
	GrossProfit   float64 `json:"gross_profit"`
	MarginPct     float64 `json:"margin_pct"` // profit*100/income, 2 decimals

	IssuedInvoiceCount   int     `json:"issued_invoice_count"`
	ReceivedInvoiceCount int     `json:"received_invoice_count"`
	IssuedBase           float64 `json:"issued_base"`   // base imponible of issued invoices
	ReceivedBase         float64 `json:"received_base"` // base imponible of received invoices

	OutputVAT     float64 `json:"output_vat"`     // IVA repercutido
	InputVAT      float64 `json:"input_vat"`      // IVA soportado
	VATSettlement float64 `json:"vat_settlement"` // output minus input

	PendingCollection float64 `json:"pending_collection"` // unpaid issued invoices
	PendingPayment    float64 `json:"pending_payment"`    // unpaid received invoices + expenses

	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	ExpensesBySupplier []SupplierTotal    `json:"expenses_by_supplier"`
	MonthlyEvolution   []MonthlyTotal     `json:"monthly_evolution"`
}

// SupplierTotal is a supplier's aggregate spend over the range
type SupplierTotal struct {
	SupplierID   uint    `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	Total        float64 `json:"total"`
}

// MonthlyTotal is one month's income/expense pair
type MonthlyTotal struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// GetFinancialSummary builds the complete financial summary for a range
func (s *FinanceService) GetFinancialSummary(start, end time.Time) (*FinancialSummary, error) {
	summary := &FinancialSummary{
		StartDate:          start,
		EndDate:            end,
		ExpensesByCategory: make(map[string]float64),
	}

	// Issued side
	var issued struct {
		Count int
		Base  float64
		VAT   float64
		Total float64
	}
	err := s.db.Model(&models.Invoice{}).
		Select("COUNT(*) as count, COALESCE(SUM(taxable_base), 0) as base, COALESCE(SUM(total_vat), 0) as vat, COALESCE(SUM(total), 0) as total").
		Where("issue_date >= ? AND issue_date < ?", start, end).
		Scan(&issued).Error
	if err != nil {
		return nil, fmt.Errorf("error aggregating issued invoices: %w", err)
	}
	summary.IssuedInvoiceCount = issued.Count
	summary.IssuedBase = issued.Base
	summary.OutputVAT = issued.VAT
	summary.TotalIncome = issued.Total

	// Received side
	var received struct {
		Count int
		Base  float64
		VAT   float64
		Total float64
	}
	err = s.db.Model(&models.ReceivedInvoice{}).
		Select("COUNT(*) as count, COALESCE(SUM(taxable_base), 0) as base, COALESCE(SUM(vat_amount), 0) as vat, COALESCE(SUM(total), 0) as total").
		Where("issue_date >= ? AND issue_date < ?", start, end).
		Scan(&received).Error
	if err != nil {
		return nil, fmt.Errorf("error aggregating received invoices: %w", err)
	}
	summary.ReceivedInvoiceCount = received.Count
	summary.ReceivedBase = received.Base

	var expenses struct {
		Base  float64
		VAT   float64
		Total float64
	}
	err = s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) as base, COALESCE(SUM(vat_amount), 0) as vat, COALESCE(SUM(total), 0) as total").
		Where("date >= ? AND date < ?", start, end).
		Scan(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("error aggregating expenses: %w", err)
	}

	summary.InputVAT = received.VAT + expenses.VAT
	summary.TotalExpenses = received.Total + expenses.Total
	summary.GrossProfit = summary.TotalIncome - summary.TotalExpenses
	summary.VATSettlement = summary.OutputVAT - summary.InputVAT
	summary.MarginPct = marginPercentage(summary.GrossProfit, summary.TotalIncome)

	// Outstanding totals are not range-bound, they reflect the current state
	if summary.PendingCollection, err = s.sumUnpaidIssued(); err != nil {
		return nil, err
	}
	if summary.PendingPayment, err = s.sumUnpaidPayables(); err != nil {
		return nil, err
	}

	if summary.ExpensesByCategory, err = s.GetExpensesByCategory(start, end); err != nil {
		return nil, err
	}
	if summary.ExpensesBySupplier, err = s.GetExpensesBySupplier(start, end); err != nil {
		return nil, err
	}
	if summary.MonthlyEvolution, err = s.GetMonthlyEvolution(start, end); err != nil {
		return nil, err
	}

	return summary, nil
}

// marginPercentage returns profit*100/income rounded half-up to 2 decimals,
// zero when there is no income.
func marginPercentage(profit, income float64) float64 {
	if income == 0 {
		return 0
	}
	return math.Round(profit*100/income*100) / 100
}

func (s *FinanceService) sumUnpaidIssued() (float64, error) {
	var total float64
	err := s.db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("is_paid = ?", false).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("error summing unpaid invoices: %w", err)
	}
	return total, nil
}

func (s *FinanceService) sumUnpaidPayables() (float64, error) {
	var receivedTotal float64
	err := s.db.Model(&models.ReceivedInvoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("is_paid = ?", false).
		Scan(&receivedTotal).Error
	if err != nil {
		return 0, fmt.Errorf("error summing unpaid received invoices: %w", err)
	}

	var expenseTotal float64
	err = s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(total), 0)").
		Where("is_paid = ?", false).
		Scan(&expenseTotal).Error
	if err != nil {
		return 0, fmt.Errorf("error summing unpaid expenses: %w", err)
	}

	return receivedTotal + expenseTotal, nil
}

// GetExpensesByCategory returns expense totals grouped by category,
// combining received invoices and direct expenses.
func (s *FinanceService) GetExpensesByCategory(start, end time.Time) (map[string]float64, error) {
	result := make(map[string]float64)

	type categorySum struct {
		Category string
		Total    float64
	}

	var expenseSums []categorySum
	err := s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(total), 0) as total").
		Where("date >= ? AND date < ?", start, end).
		Group("category").
		Scan(&expenseSums).Error
	if err != nil {
		return nil, fmt.Errorf("error grouping expenses by category: %w", err)
	}
	for _, sum := range expenseSums {
		result[sum.Category] += sum.Total
	}

	var receivedSums []categorySum
	err = s.db.Model(&models.ReceivedInvoice{}).
		Select("category, COALESCE(SUM(total), 0) as total").
		Where("issue_date >= ? AND issue_date < ?", start, end).
		Group("category").
		Scan(&receivedSums).Error
	if err != nil {
		return nil, fmt.Errorf("error grouping received invoices by category: %w", err)
	}
	for _, sum := range receivedSums {
		result[sum.Category] += sum.Total
	}

	return result, nil
}

// GetExpensesBySupplier returns spend totals grouped by supplier
func (s *FinanceService) GetExpensesBySupplier(start, end time.Time) ([]SupplierTotal, error) {
	var totals []SupplierTotal
	err := s.db.Table("received_invoices").
		Select("suppliers.id as supplier_id, suppliers.name as supplier_name, COALESCE(SUM(received_invoices.total), 0) as total").
		Joins("JOIN suppliers ON suppliers.id = received_invoices.supplier_id").
		Where("received_invoices.issue_date >= ? AND received_invoices.issue_date < ?", start, end).
		Where("received_invoices.deleted_at IS NULL").
		Group("suppliers.id, suppliers.name").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("error grouping spend by supplier: %w", err)
	}
	return totals, nil
}

// GetMonthlyEvolution returns the income/expense pair for every month the
// range touches. One summed query per month and side keeps the SQL portable
// between SQLite and PostgreSQL.
func (s *FinanceService) GetMonthlyEvolution(start, end time.Time) ([]MonthlyTotal, error) {
	var evolution []MonthlyTotal

	monthStart := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for monthStart.Before(end) {
		monthEnd := monthStart.AddDate(0, 1, 0)

		var income float64
		err := s.db.Model(&models.Invoice{}).
			Select("COALESCE(SUM(total), 0)").
			Where("issue_date >= ? AND issue_date < ?", monthStart, monthEnd).
			Scan(&income).Error
		if err != nil {
			return nil, fmt.Errorf("error summing monthly income: %w", err)
		}

		var receivedTotal float64
		err = s.db.Model(&models.ReceivedInvoice{}).
			Select("COALESCE(SUM(total), 0)").
			Where("issue_date >= ? AND issue_date < ?", monthStart, monthEnd).
			Scan(&receivedTotal).Error
		if err != nil {
			return nil, fmt.Errorf("error summing monthly received invoices: %w", err)
		}

		var expenseTotal float64
		err = s.db.Model(&models.Expense{}).
			Select("COALESCE(SUM(total), 0)").
			Where("date >= ? AND date < ?", monthStart, monthEnd).
			Scan(&expenseTotal).Error
		if err != nil {
			return nil, fmt.Errorf("error summing monthly expenses: %w", err)
		}

		evolution = append(evolution, MonthlyTotal{
			Year:     monthStart.Year(),
			Month:    int(monthStart.Month()),
			Income:   income,
			Expenses: receivedTotal + expenseTotal,
		})
		monthStart = monthEnd
	}

	return evolution, nil
}

// GetYearSummary is a convenience wrapper for a whole calendar year
func (s *FinanceService) GetYearSummary(year int) (*FinancialSummary, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(1, 0, 0)
	return s.GetFinancialSummary(start, end)
}

// GetQuarterVATSettlement returns the VAT to settle for a quarter (modelo 303)
func (s *FinanceService) GetQuarterVATSettlement(year, quarter int) (float64, error) {
	if quarter < 1 || quarter > 4 {
		return 0, fmt.Errorf("invalid quarter %d", quarter)
	}
	start := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 3, 0)
	summary, err := s.GetFinancialSummary(start, end)
	if err != nil {
		return 0, err
	}
	return summary.VATSettlement, nil
}
