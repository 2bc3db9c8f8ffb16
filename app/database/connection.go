package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"LavaderoApp/app/config"
	"LavaderoApp/app/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// GetDB returns the database instance. Only the composition root should use
// this accessor, services receive their *gorm.DB by injection.
func GetDB() *gorm.DB {
	return db
}

// Initialize sets up the database connection. A DATABASE_URL in the config
// selects PostgreSQL (shared installation), otherwise a local SQLite file
// under the data directory is used (CGO-free driver).
func Initialize(cfg *config.AppConfig) error {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var err error
	if cfg.Database.URL != "" {
		log.Printf("Connecting to PostgreSQL database")
		db, err = gorm.Open(postgres.Open(cfg.Database.URL), gormConfig)
	} else {
		dir := filepath.Dir(cfg.Database.Path)
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			return fmt.Errorf("failed to create database directory: %w", mkErr)
		}
		log.Printf("Opening local database at %s", cfg.Database.Path)
		db, err = gorm.Open(sqlite.Open(cfg.Database.Path), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := SeedInitialData(db); err != nil {
		log.Printf("Warning: failed to seed initial data: %v", err)
	}

	return nil
}

// RunMigrations creates or updates the schema for all models
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalog
		&models.VehicleCategory{},
		&models.VehicleModel{},
		&models.Service{},

		// Clients and appointments
		&models.Client{},
		&models.Appointment{},

		// Issued invoicing
		&models.Invoice{},
		&models.InvoiceLine{},

		// Money going out
		&models.Supplier{},
		&models.ReceivedInvoice{},
		&models.Expense{},
	)
}

// SeedInitialData inserts the default catalog on first run
func SeedInitialData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.VehicleCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := []models.VehicleCategory{
			{Name: "Turismo", Description: "Coche de pasajeros"},
			{Name: "Todoterreno", Description: "SUV y 4x4"},
			{Name: "Furgoneta", Description: "Vehículo comercial ligero"},
			{Name: "Monovolumen", Description: "Familiar de gran volumen"},
			{Name: "Moto", Description: "Motocicleta"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		services := []models.Service{
			{Name: "Lavado Exterior", Price: 9.92, VATRate: 21, Duration: 20, Category: "lavado", IsActive: true},
			{Name: "Lavado Interior", Price: 11.57, VATRate: 21, Duration: 25, Category: "lavado", IsActive: true},
			{Name: "Lavado Completo", Price: 19.01, VATRate: 21, Duration: 45, Category: "lavado", IsActive: true},
			{Name: "Encerado", Price: 24.79, VATRate: 21, Duration: 40, Category: "detallado", IsActive: true},
			{Name: "Limpieza de Tapicería", Price: 37.19, VATRate: 21, Duration: 90, Category: "detallado", IsActive: true},
		}
		if err := db.Create(&services).Error; err != nil {
			return err
		}
	}

	return nil
}
