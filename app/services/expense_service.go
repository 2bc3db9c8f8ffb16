package services

import (
	"fmt"
	"time"

	"LavaderoApp/app/models"

	"gorm.io/gorm"
)

// ExpenseService handles suppliers, received invoices and expenses
type ExpenseService struct {
	*BaseService
}

// NewExpenseService creates a new expense service
func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{BaseService: NewBaseService(db)}
}

// Suppliers

// CreateSupplier registers a new supplier
func (s *ExpenseService) CreateSupplier(supplier *models.Supplier) error {
	if supplier.Name == "" {
		return fmt.Errorf("supplier name is required")
	}
	supplier.IsActive = true
	if err := s.Create(supplier); err != nil {
		return fmt.Errorf("error creating supplier: %w", err)
	}
	return nil
}

// UpdateSupplier saves changes to a supplier
func (s *ExpenseService) UpdateSupplier(supplier *models.Supplier) error {
	if supplier.ID == 0 {
		return fmt.Errorf("supplier ID is required")
	}
	if err := s.Save(supplier); err != nil {
		return fmt.Errorf("error updating supplier: %w", err)
	}
	return nil
}

// ListActiveSuppliers returns all active suppliers
func (s *ExpenseService) ListActiveSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.GetDB().Where("is_active = ?", true).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

// Received invoices

// CreateReceivedInvoice persists a supplier invoice, deriving its VAT and
// total from the base right before the save.
func (s *ExpenseService) CreateReceivedInvoice(invoice *models.ReceivedInvoice) error {
	if invoice.SupplierID == 0 {
		return fmt.Errorf("received invoice requires a supplier")
	}
	if invoice.VATRate == 0 {
		invoice.VATRate = models.DefaultVATRate
	}
	invoice.ComputeTotals()
	if err := s.Create(invoice); err != nil {
		return fmt.Errorf("error creating received invoice: %w", err)
	}
	return nil
}

// UpdateReceivedInvoice recomputes totals and saves a supplier invoice
func (s *ExpenseService) UpdateReceivedInvoice(invoice *models.ReceivedInvoice) error {
	if invoice.ID == 0 {
		return fmt.Errorf("received invoice ID is required")
	}
	invoice.ComputeTotals()
	if err := s.Save(invoice); err != nil {
		return fmt.Errorf("error updating received invoice: %w", err)
	}
	return nil
}

// MarkReceivedInvoicePaid stamps a supplier invoice as paid
func (s *ExpenseService) MarkReceivedInvoicePaid(id uint) error {
	now := time.Now()
	result := s.GetDB().Model(&models.ReceivedInvoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_paid": true, "paid_date": &now})
	if result.Error != nil {
		return fmt.Errorf("error marking received invoice %d as paid: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("received invoice %d not found", id)
	}
	return nil
}

// ListReceivedInvoicesByRange returns supplier invoices in a date range
func (s *ExpenseService) ListReceivedInvoicesByRange(start, end time.Time) ([]models.ReceivedInvoice, error) {
	var invoices []models.ReceivedInvoice
	err := s.GetDB().
		Preload("Supplier").
		Where("issue_date >= ? AND issue_date < ?", start, end).
		Order("issue_date ASC").
		Find(&invoices).Error
	return invoices, err
}

// Expenses

// CreateExpense persists an expense, deriving its VAT and total from the base
func (s *ExpenseService) CreateExpense(expense *models.Expense) error {
	if expense.Concept == "" {
		return fmt.Errorf("expense concept is required")
	}
	if expense.VATRate == 0 {
		expense.VATRate = models.DefaultVATRate
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	expense.ComputeTotals()
	if err := s.Create(expense); err != nil {
		return fmt.Errorf("error creating expense: %w", err)
	}
	return nil
}

// UpdateExpense recomputes totals and saves an expense
func (s *ExpenseService) UpdateExpense(expense *models.Expense) error {
	if expense.ID == 0 {
		return fmt.Errorf("expense ID is required")
	}
	expense.ComputeTotals()
	if err := s.Save(expense); err != nil {
		return fmt.Errorf("error updating expense: %w", err)
	}
	return nil
}

// MarkExpensePaid stamps an expense as paid
func (s *ExpenseService) MarkExpensePaid(id uint) error {
	result := s.GetDB().Model(&models.Expense{}).Where("id = ?", id).Update("is_paid", true)
	if result.Error != nil {
		return fmt.Errorf("error marking expense %d as paid: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("expense %d not found", id)
	}
	return nil
}

// ListExpensesByRange returns expenses in a date range
func (s *ExpenseService) ListExpensesByRange(start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.GetDB().
		Preload("Supplier").
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&expenses).Error
	return expenses, err
}

// ListRecurringExpenses returns the expenses flagged as recurring
func (s *ExpenseService) ListRecurringExpenses() ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.GetDB().Where("is_recurring = ?", true).Order("concept ASC").Find(&expenses).Error
	return expenses, err
}
