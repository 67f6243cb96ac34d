package repositories

import "udaanhub/internal/models"

// ArtisanProfileRepository defines the interface for artisan profile data
// access. Read methods return profiles with the owner joined in, minus the
// owner's password hash.
type ArtisanProfileRepository interface {
	Create(profile *models.ArtisanProfile) error
	GetAll() ([]models.ArtisanProfile, error)
	GetByID(id string) (*models.ArtisanProfile, error)
	GetByUserID(userID string) (*models.ArtisanProfile, error)
	Update(profile *models.ArtisanProfile) error
	Delete(id string) error
}
