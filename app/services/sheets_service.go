package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetsService exports financial summaries to a Google spreadsheet.
// Used by owners who keep their accounting overview in Sheets.
type GoogleSheetsService struct {
	financeSvc *FinanceService
}

// NewGoogleSheetsService creates a new sheets export service
func NewGoogleSheetsService(financeSvc *FinanceService) *GoogleSheetsService {
	return &GoogleSheetsService{financeSvc: financeSvc}
}

// SheetsCredentials identifies the target spreadsheet and how to reach it
type SheetsCredentials struct {
	ServiceAccountJSON string `json:"service_account_json"`
	SpreadsheetID      string `json:"spreadsheet_id"`
	SheetName          string `json:"sheet_name"`
}

// TestConnection verifies the credentials can reach the spreadsheet
func (s *GoogleSheetsService) TestConnection(ctx context.Context, creds SheetsCredentials) error {
	srv, err := s.sheetsClient(ctx, creds)
	if err != nil {
		return err
	}
	if _, err := srv.Spreadsheets.Get(creds.SpreadsheetID).Do(); err != nil {
		return fmt.Errorf("unable to access spreadsheet: %w", err)
	}
	return nil
}

// ExportSummary appends the financial summary for a range, followed by its
// month-by-month evolution, to the configured sheet.
func (s *GoogleSheetsService) ExportSummary(ctx context.Context, creds SheetsCredentials, start, end time.Time) error {
	summary, err := s.financeSvc.GetFinancialSummary(start, end)
	if err != nil {
		return fmt.Errorf("error building financial summary: %w", err)
	}

	srv, err := s.sheetsClient(ctx, creds)
	if err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Periodo", start.Format("2006-01-02"), end.Format("2006-01-02")},
		{"Ingresos", summary.TotalIncome},
		{"Gastos", summary.TotalExpenses},
		{"Beneficio", summary.GrossProfit},
		{"Margen %", summary.MarginPct},
		{"IVA repercutido", summary.OutputVAT},
		{"IVA soportado", summary.InputVAT},
		{"Liquidación IVA", summary.VATSettlement},
		{"Pendiente de cobro", summary.PendingCollection},
		{"Pendiente de pago", summary.PendingPayment},
		{},
		{"Año", "Mes", "Ingresos", "Gastos"},
	}
	for _, month := range summary.MonthlyEvolution {
		rows = append(rows, []interface{}{month.Year, month.Month, month.Income, month.Expenses})
	}

	sheetName := creds.SheetName
	if sheetName == "" {
		sheetName = "Resumen"
	}

	valueRange := &sheets.ValueRange{Values: rows}
	_, err = srv.Spreadsheets.Values.
		Append(creds.SpreadsheetID, sheetName+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to append summary rows: %w", err)
	}
	return nil
}

func (s *GoogleSheetsService) sheetsClient(ctx context.Context, creds SheetsCredentials) (*sheets.Service, error) {
	if creds.ServiceAccountJSON == "" || creds.SpreadsheetID == "" {
		return nil, fmt.Errorf("missing credentials or spreadsheet ID")
	}

	googleCreds, err := google.CredentialsFromJSON(ctx, []byte(creds.ServiceAccountJSON), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithCredentials(googleCreds))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}
