package services

import (
	"testing"
	"time"

	"LavaderoApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedFinanceData loads a known quarter of activity:
// issued 2 invoices (100+21, 200+42), received 1 (50+10.5), 1 expense (30+6.3)
func seedFinanceData(t *testing.T, db *gorm.DB) (start, end time.Time) {
	t.Helper()

	start = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 3, 0)

	client := models.Client{Name: "Juan", Phone: "600111222", Email: "juan@example.com"}
	require.NoError(t, db.Create(&client).Error)

	supplier := models.Supplier{Name: "Químicas del Sur", TaxID: "B12345678", Category: "productos", IsActive: true}
	require.NoError(t, db.Create(&supplier).Error)

	invoices := []models.Invoice{
		{
			Number:      1,
			Series:      "F-2025",
			ClientID:    client.ID,
			IssueDate:   start.AddDate(0, 0, 10),
			TaxableBase: 100,
			TotalVAT:    21,
			Total:       121,
			IsPaid:      true,
		},
		{
			Number:      2,
			Series:      "F-2025",
			ClientID:    client.ID,
			IssueDate:   start.AddDate(0, 1, 5),
			TaxableBase: 200,
			TotalVAT:    42,
			Total:       242,
			IsPaid:      false,
		},
	}
	require.NoError(t, db.Create(&invoices).Error)

	received := models.ReceivedInvoice{
		Number:      "QS-77",
		SupplierID:  supplier.ID,
		IssueDate:   start.AddDate(0, 0, 20),
		Category:    "productos",
		TaxableBase: 50,
		VATRate:     21,
		VATAmount:   10.5,
		Total:       60.5,
		IsPaid:      false,
	}
	require.NoError(t, db.Create(&received).Error)

	expense := models.Expense{
		Concept:   "Recibo de agua",
		Category:  "agua",
		Date:      start.AddDate(0, 2, 1),
		Amount:    30,
		VATRate:   21,
		VATAmount: 6.3,
		Total:     36.3,
		IsPaid:    true,
	}
	require.NoError(t, db.Create(&expense).Error)

	return start, end
}

func TestGetFinancialSummary(t *testing.T) {
	db := setupTestDB(t)
	start, end := seedFinanceData(t, db)
	financeSvc := NewFinanceService(db)

	summary, err := financeSvc.GetFinancialSummary(start, end)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.IssuedInvoiceCount)
	assert.Equal(t, 1, summary.ReceivedInvoiceCount)
	assert.InDelta(t, 363.0, summary.TotalIncome, 1e-9)
	assert.InDelta(t, 96.8, summary.TotalExpenses, 1e-9)
	assert.InDelta(t, 266.2, summary.GrossProfit, 1e-9)

	assert.InDelta(t, 300.0, summary.IssuedBase, 1e-9)
	assert.InDelta(t, 50.0, summary.ReceivedBase, 1e-9)
	assert.InDelta(t, 63.0, summary.OutputVAT, 1e-9)
	assert.InDelta(t, 16.8, summary.InputVAT, 1e-9)
	assert.InDelta(t, 46.2, summary.VATSettlement, 1e-9)

	// 266.2*100/363 = 73.3333... rounded half-up to 2 decimals
	assert.InDelta(t, 73.33, summary.MarginPct, 1e-9)

	// Unpaid issued invoice 242, unpaid received invoice 60.5
	assert.InDelta(t, 242.0, summary.PendingCollection, 1e-9)
	assert.InDelta(t, 60.5, summary.PendingPayment, 1e-9)
}

func TestFinancialSummaryEmptyRange(t *testing.T) {
	db := setupTestDB(t)
	financeSvc := NewFinanceService(db)

	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	summary, err := financeSvc.GetFinancialSummary(start, start.AddDate(0, 1, 0))
	require.NoError(t, err)

	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.TotalExpenses)
	assert.Zero(t, summary.GrossProfit)
	// No income never divides by zero
	assert.Zero(t, summary.MarginPct)
}

func TestExpensesByCategory(t *testing.T) {
	db := setupTestDB(t)
	start, end := seedFinanceData(t, db)
	financeSvc := NewFinanceService(db)

	byCategory, err := financeSvc.GetExpensesByCategory(start, end)
	require.NoError(t, err)

	assert.InDelta(t, 36.3, byCategory["agua"], 1e-9)
	assert.InDelta(t, 60.5, byCategory["productos"], 1e-9)
}

func TestExpensesBySupplier(t *testing.T) {
	db := setupTestDB(t)
	start, end := seedFinanceData(t, db)
	financeSvc := NewFinanceService(db)

	bySupplier, err := financeSvc.GetExpensesBySupplier(start, end)
	require.NoError(t, err)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, "Químicas del Sur", bySupplier[0].SupplierName)
	assert.InDelta(t, 60.5, bySupplier[0].Total, 1e-9)
}

func TestMonthlyEvolution(t *testing.T) {
	db := setupTestDB(t)
	start, end := seedFinanceData(t, db)
	financeSvc := NewFinanceService(db)

	evolution, err := financeSvc.GetMonthlyEvolution(start, end)
	require.NoError(t, err)
	require.Len(t, evolution, 3)

	assert.Equal(t, 2025, evolution[0].Year)
	assert.Equal(t, 4, evolution[0].Month)
	assert.InDelta(t, 121.0, evolution[0].Income, 1e-9)
	assert.InDelta(t, 60.5, evolution[0].Expenses, 1e-9)

	assert.Equal(t, 5, evolution[1].Month)
	assert.InDelta(t, 242.0, evolution[1].Income, 1e-9)

	assert.Equal(t, 6, evolution[2].Month)
	assert.InDelta(t, 36.3, evolution[2].Expenses, 1e-9)
}

func TestMarginPercentageRounding(t *testing.T) {
	assert.Zero(t, marginPercentage(100, 0))
	assert.InDelta(t, 33.33, marginPercentage(1, 3), 1e-9)
	assert.InDelta(t, 66.67, marginPercentage(2, 3), 1e-9)
	assert.InDelta(t, 100.0, marginPercentage(121, 121), 1e-9)
	assert.InDelta(t, -50.0, marginPercentage(-60.5, 121), 1e-9)
}

func TestQuarterVATSettlement(t *testing.T) {
	db := setupTestDB(t)
	seedFinanceData(t, db)
	financeSvc := NewFinanceService(db)

	settlement, err := financeSvc.GetQuarterVATSettlement(2025, 2)
	require.NoError(t, err)
	assert.InDelta(t, 46.2, settlement, 1e-9)

	_, err = financeSvc.GetQuarterVATSettlement(2025, 5)
	assert.Error(t, err)
}
