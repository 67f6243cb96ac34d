package repositories

import (
	"sort"
	"sync"
	"time"

	"udaanhub/internal/models"

	"github.com/google/uuid"
)

// MockArtisanProfileRepository is an in-memory implementation of
// ArtisanProfileRepository. The user_id uniqueness guard is enforced under
// the same lock as the insert, matching the database constraint semantics.
type MockArtisanProfileRepository struct {
	profiles map[string]models.ArtisanProfile // keyed by profile ID
	users    UserRepository                   // owner join source, may be nil
	mu       sync.RWMutex
}

// NewMockArtisanProfileRepository creates a new in-memory profile repository.
// When users is non-nil, read methods join the owner like the GORM preload.
func NewMockArtisanProfileRepository(users UserRepository) *MockArtisanProfileRepository {
	return &MockArtisanProfileRepository{
		profiles: make(map[string]models.ArtisanProfile),
		users:    users,
	}
}

func (r *MockArtisanProfileRepository) joinOwner(profile *models.ArtisanProfile) {
	if r.users == nil {
		return
	}
	if owner, err := r.users.GetByID(profile.UserID); err == nil {
		profile.User = owner
	}
}

// Create adds a new profile, rejecting a second profile for the same user.
func (r *MockArtisanProfileRepository) Create(profile *models.ArtisanProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.UserID == profile.UserID {
			return ErrDuplicateProfile
		}
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.ID] = *profile
	return nil
}

// GetAll returns all profiles, newest first, owners joined.
func (r *MockArtisanProfileRepository) GetAll() ([]models.ArtisanProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]models.ArtisanProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profile := p
		r.joinOwner(&profile)
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	return profiles, nil
}

// GetByID returns a profile by its ID, owner joined.
func (r *MockArtisanProfileRepository) GetByID(id string) (*models.ArtisanProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.joinOwner(&p)
	return &p, nil
}

// GetByUserID returns the profile owned by the given user, owner joined.
func (r *MockArtisanProfileRepository) GetByUserID(userID string) (*models.ArtisanProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			profile := p
			r.joinOwner(&profile)
			return &profile, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces an existing profile record.
func (r *MockArtisanProfileRepository) Update(profile *models.ArtisanProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.ID]; !ok {
		return ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	stored := *profile
	stored.User = nil
	r.profiles[profile.ID] = stored
	return nil
}

// Delete removes a profile by its ID.
func (r *MockArtisanProfileRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(r.profiles, id)
	return nil
}
