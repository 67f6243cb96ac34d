package repositories

import "udaanhub/internal/models"

// UserRepository defines the interface for user data access.
//
// GetByID excludes the password hash at the query layer; GetByEmail returns
// the full record because login needs the stored hash for comparison.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
}
