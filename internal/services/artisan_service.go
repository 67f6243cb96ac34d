package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"udaanhub/internal/models"
	"udaanhub/internal/repositories"
	"udaanhub/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
)

// Validation failures surfaced to the API as 400 responses.
var (
	ErrSkillsRequired = errors.New("at least one skill is required")
	ErrNegativePrice  = errors.New("price must be a positive number")
)

// ProfileInput carries profile fields from a create or update request.
// Pointer fields distinguish "absent" (leave unchanged) from an explicit
// zero value, so `{"price": 0}` is a valid update.
type ProfileInput struct {
	ProfilePhoto *string   `json:"profilePhoto"`
	Skills       *[]string `json:"skills"`
	Description  *string   `json:"description"`
	Location     *string   `json:"location"`
	Price        *float64  `json:"price"`
	Phone        *string   `json:"phone"`
	Aadhaar      *string   `json:"aadhaar"`
}

// ArtisanService handles business logic for artisan profiles.
type ArtisanService struct {
	profileRepo repositories.ArtisanProfileRepository
	validate    *validator.Validate
	mqClient    *rabbitmq.Client
}

// NewArtisanService creates a new ArtisanService. mqClient may be nil, in
// which case lifecycle events are skipped.
func NewArtisanService(profileRepo repositories.ArtisanProfileRepository, mqClient *rabbitmq.Client) *ArtisanService {
	return &ArtisanService{
		profileRepo: profileRepo,
		validate:    models.NewValidator(),
		mqClient:    mqClient,
	}
}

// CreateProfile creates the caller's profile. Fails with ErrSkillsRequired
// when no skill is given and with repositories.ErrDuplicateProfile when the
// caller already owns one; the latter is enforced by the store's unique
// index even under concurrent submission.
func (s *ArtisanService) CreateProfile(userID string, in ProfileInput) (*models.ArtisanProfile, error) {
	if in.Skills == nil || len(*in.Skills) == 0 {
		return nil, ErrSkillsRequired
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, ErrNegativePrice
	}

	// Existence pre-check for a friendly error; not the safety mechanism.
	if existing, err := s.profileRepo.GetByUserID(userID); err == nil && existing != nil {
		return nil, repositories.ErrDuplicateProfile
	}

	profile := &models.ArtisanProfile{
		UserID: userID,
		Skills: *in.Skills,
		Price:  in.Price,
	}
	if in.ProfilePhoto != nil {
		profile.ProfilePhoto = *in.ProfilePhoto
	}
	applyTextFields(profile, in)

	if err := s.validate.Struct(profile); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}

	created, err := s.profileRepo.GetByID(profile.ID)
	if err != nil {
		return nil, err
	}
	s.publishEvent("profile.created", created)
	return created, nil
}

// GetAllProfiles retrieves every profile, owners joined, newest first.
func (s *ArtisanService) GetAllProfiles() ([]models.ArtisanProfile, error) {
	return s.profileRepo.GetAll()
}

// GetProfileByID retrieves a single profile with its owner.
func (s *ArtisanService) GetProfileByID(id string) (*models.ArtisanProfile, error) {
	return s.profileRepo.GetByID(id)
}

// GetMyProfile retrieves the caller's own profile.
func (s *ArtisanService) GetMyProfile(userID string) (*models.ArtisanProfile, error) {
	return s.profileRepo.GetByUserID(userID)
}

// UpdateMyProfile applies a partial update to the caller's profile: only
// fields present in the input change. Skills, when provided, must stay
// non-empty; price, when provided, must be >= 0.
func (s *ArtisanService) UpdateMyProfile(userID string, in ProfileInput) (*models.ArtisanProfile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if in.Skills != nil {
		if len(*in.Skills) == 0 {
			return nil, ErrSkillsRequired
		}
		profile.Skills = *in.Skills
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, ErrNegativePrice
		}
		profile.Price = in.Price
	}
	if in.ProfilePhoto != nil {
		profile.ProfilePhoto = *in.ProfilePhoto
	}
	applyTextFields(profile, in)

	if err := s.validate.Struct(profile); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}

	updated, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	s.publishEvent("profile.updated", updated)
	return updated, nil
}

// DeleteMyProfile permanently removes the caller's profile.
func (s *ArtisanService) DeleteMyProfile(userID string) error {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.Delete(profile.ID); err != nil {
		return err
	}
	s.publishEvent("profile.deleted", profile)
	return nil
}

// applyTextFields copies the trimmed free-text fields that are present.
func applyTextFields(profile *models.ArtisanProfile, in ProfileInput) {
	if in.Description != nil {
		profile.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		profile.Location = strings.TrimSpace(*in.Location)
	}
	if in.Phone != nil {
		profile.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Aadhaar != nil {
		profile.Aadhaar = strings.TrimSpace(*in.Aadhaar)
	}
}

// publishEvent emits a profile lifecycle event. Publishing is best effort:
// failures are logged and never surfaced to the API caller.
func (s *ArtisanService) publishEvent(event string, profile *models.ArtisanProfile) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"profileId": profile.ID,
		"userId":    profile.UserID,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.ProfileEventsQueue, body); err != nil {
		log.Printf("Warning: failed to publish %s event for profile %s: %v", event, profile.ID, err)
	}
}
