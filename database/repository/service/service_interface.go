package serviceRepo

import "bookable/models"

// ServiceRepository defines persistence operations for services. Lookups
// return (nil, nil) when no service matches.
type ServiceRepository interface {
	Create(service *models.Service) error
	Update(service *models.Service) error
	GetByID(id string) (*models.Service, error)
	ListByAccount(accountID string) ([]models.Service, error)
	ListVisibleByAccount(accountID string) ([]models.Service, error)
}
