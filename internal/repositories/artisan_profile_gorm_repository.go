package repositories

import (
	"errors"
	"fmt"

	"udaanhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMArtisanProfileRepository is a GORM implementation of
// ArtisanProfileRepository.
type GORMArtisanProfileRepository struct {
	db *gorm.DB
}

// NewGORMArtisanProfileRepository creates a new instance of
// GORMArtisanProfileRepository.
func NewGORMArtisanProfileRepository(db *gorm.DB) *GORMArtisanProfileRepository {
	return &GORMArtisanProfileRepository{
		db: db,
	}
}

// withOwner preloads the owning user with the password column excluded at
// the query layer.
func (r *GORMArtisanProfileRepository) withOwner() *gorm.DB {
	return r.db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select(publicUserColumns)
	})
}

// Create inserts a new profile. The unique index on user_id closes the race
// between the service-level existence check and the insert; a violation
// surfaces as ErrDuplicateProfile.
func (r *GORMArtisanProfileRepository) Create(profile *models.ArtisanProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if err := r.db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateProfile
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetAll retrieves every profile with its owner, newest first.
func (r *GORMArtisanProfileRepository) GetAll() ([]models.ArtisanProfile, error) {
	var profiles []models.ArtisanProfile
	if err := r.withOwner().Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get all profiles: %w", err)
	}
	return profiles, nil
}

// GetByID retrieves a single profile with its owner. A malformed ID matches
// nothing and is reported as ErrNotFound.
func (r *GORMArtisanProfileRepository) GetByID(id string) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	if err := r.withOwner().First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile by ID %s: %w", id, err)
	}
	return &profile, nil
}

// GetByUserID retrieves the profile owned by the given user, owner joined.
func (r *GORMArtisanProfileRepository) GetByUserID(userID string) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	if err := r.withOwner().First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// Update saves the full profile record. Partial semantics are the caller's
// responsibility: load, mutate the provided fields, save.
func (r *GORMArtisanProfileRepository) Update(profile *models.ArtisanProfile) error {
	res := r.db.Omit("User").Save(profile)
	if res.Error != nil {
		return fmt.Errorf("failed to update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a profile by its ID. No soft delete.
func (r *GORMArtisanProfileRepository) Delete(id string) error {
	res := r.db.Delete(&models.ArtisanProfile{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
