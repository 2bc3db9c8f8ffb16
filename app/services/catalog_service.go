package services

import (
	"fmt"

	"LavaderoApp/app/models"

	"gorm.io/gorm"
)

// CatalogService manages the service catalog and vehicle reference data
type CatalogService struct {
	*BaseService
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{BaseService: NewBaseService(db)}
}

// CreateService adds a catalog item
func (s *CatalogService) CreateService(service *models.Service) error {
	if service.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if service.VATRate == 0 {
		service.VATRate = models.DefaultVATRate
	}
	if service.Duration == 0 {
		service.Duration = models.DefaultServiceDuration
	}
	if err := s.Create(service); err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}
	return nil
}

// UpdateService saves changes to a catalog item
func (s *CatalogService) UpdateService(service *models.Service) error {
	if service.ID == 0 {
		return fmt.Errorf("service ID is required")
	}
	if err := s.Save(service); err != nil {
		return fmt.Errorf("error updating service: %w", err)
	}
	return nil
}

// GetServiceByName finds a catalog item by its unique name
func (s *CatalogService) GetServiceByName(name string) (*models.Service, error) {
	var service models.Service
	err := s.GetDB().Where("name = ?", name).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// FindOrCreateService returns the catalog item with the template's name,
// creating it when missing. Used by the booking import for synthetic services.
func (s *CatalogService) FindOrCreateService(template models.Service) (*models.Service, error) {
	existing, err := s.GetServiceByName(template.Name)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("error looking up service %q: %w", template.Name, err)
	}
	if err := s.CreateService(&template); err != nil {
		return nil, err
	}
	return &template, nil
}

// ListActiveServices returns the active catalog, ordered by category and name
func (s *CatalogService) ListActiveServices() ([]models.Service, error) {
	var services []models.Service
	err := s.GetDB().
		Where("is_active = ?", true).
		Order("category ASC, name ASC").
		Find(&services).Error
	return services, err
}

// DeactivateService hides a catalog item without deleting it
func (s *CatalogService) DeactivateService(id uint) error {
	result := s.GetDB().Model(&models.Service{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("error deactivating service %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("service %d not found", id)
	}
	return nil
}

// ListVehicleCategories returns all vehicle categories
func (s *CatalogService) ListVehicleCategories() ([]models.VehicleCategory, error) {
	var categories []models.VehicleCategory
	err := s.GetDB().Order("name ASC").Find(&categories).Error
	return categories, err
}

// ListVehicleModels returns the known vehicle models with their category
func (s *CatalogService) ListVehicleModels() ([]models.VehicleModel, error) {
	var vehicleModels []models.VehicleModel
	err := s.GetDB().Preload("Category").Order("brand ASC, name ASC").Find(&vehicleModels).Error
	return vehicleModels, err
}

// CreateVehicleModel adds a vehicle model
func (s *CatalogService) CreateVehicleModel(model *models.VehicleModel) error {
	if model.Name == "" {
		return fmt.Errorf("vehicle model name is required")
	}
	if err := s.Create(model); err != nil {
		return fmt.Errorf("error creating vehicle model: %w", err)
	}
	return nil
}
