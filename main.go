package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"LavaderoApp/app/config"
	"LavaderoApp/app/database"
	"LavaderoApp/app/pdf"
	"LavaderoApp/app/remote"
	"LavaderoApp/app/services"
)

// App bundles the constructed services the desktop shell binds to
type App struct {
	Config        *config.AppConfig
	Logger        *services.LoggerService
	Clients       *services.ClientService
	Appointments  *services.AppointmentService
	Catalog       *services.CatalogService
	Invoices      *services.InvoiceService
	Expenses      *services.ExpenseService
	Finance       *services.FinanceService
	Sheets        *services.GoogleSheetsService
	BookingImport *services.BookingImportService
	InvoicePDF    *pdf.InvoiceGenerator
}

// NewApp wires the whole application: config, logger, database and services.
// A database failure is fatal; everything else degrades with a warning.
func NewApp() (*App, error) {
	cfg := config.Load()
	if err := cfg.EnsureDataPath(); err != nil {
		return nil, err
	}

	logger := services.NewLoggerService(cfg.System.DataPath)
	logger.LogInfo("Starting Lavadero CRM", fmt.Sprintf("data path: %s", cfg.System.DataPath))

	if err := database.Initialize(cfg); err != nil {
		return nil, fmt.Errorf("could not initialize database: %w", err)
	}
	db := database.GetDB()

	clientSvc := services.NewClientService(db)
	catalogSvc := services.NewCatalogService(db)
	appointmentSvc := services.NewAppointmentService(db, clientSvc)
	invoiceSvc := services.NewInvoiceService(db, clientSvc, appointmentSvc, cfg.Business.Series)
	expenseSvc := services.NewExpenseService(db)
	financeSvc := services.NewFinanceService(db)

	bookingClient := remote.NewBookingClient(cfg.API)
	importSvc := services.NewBookingImportService(bookingClient, clientSvc, catalogSvc, appointmentSvc, logger)

	app := &App{
		Config:        cfg,
		Logger:        logger,
		Clients:       clientSvc,
		Appointments:  appointmentSvc,
		Catalog:       catalogSvc,
		Invoices:      invoiceSvc,
		Expenses:      expenseSvc,
		Finance:       financeSvc,
		Sheets:        services.NewGoogleSheetsService(financeSvc),
		BookingImport: importSvc,
		InvoicePDF:    pdf.NewInvoiceGenerator(cfg.Business, cfg.System.DataPath),
	}

	// Connectivity probe: a down booking API is a warning, never fatal
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.API.ConnectTimeout)*time.Second)
	defer cancel()
	if err := bookingClient.Health(ctx); err != nil {
		logger.LogWarning("Booking API not reachable, working offline", err.Error())
	} else {
		logger.LogInfo("Booking API reachable", cfg.API.BaseURL)
		if result, err := importSvc.ImportDay(context.Background(), time.Now()); err != nil {
			logger.LogWarning("Booking import failed", err.Error())
		} else {
			logger.LogInfo("Booking import done",
				fmt.Sprintf("fetched=%d imported=%d", result.Fetched, result.Imported))
		}
	}

	return app, nil
}

func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}

	// The desktop shell owns the event loop; until it is attached, print
	// today's schedule so a headless run is still useful.
	today, err := app.Appointments.ListAppointmentsByDay(time.Now())
	if err != nil {
		app.Logger.LogError("Could not list today's appointments", err)
		return
	}
	app.Logger.LogInfo("Appointments today", fmt.Sprintf("%d scheduled", len(today)))
	for _, appointment := range today {
		when := "--:--"
		if appointment.ScheduledAt != nil {
			when = appointment.ScheduledAt.Format("15:04")
		}
		name := ""
		if appointment.Client != nil {
			name = appointment.Client.FullName()
		}
		fmt.Printf("%s  %-25s %-12s %8.2f €\n", when, name, appointment.Status.DisplayName(), appointment.Total)
	}
}
