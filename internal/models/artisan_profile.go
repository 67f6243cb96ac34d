package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// ArtisanProfile is the public service listing owned by exactly one artisan.
// The unique index on UserID is the authoritative one-profile-per-user guard.
type ArtisanProfile struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `json:"userId" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	User         *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProfilePhoto string    `json:"profilePhoto" gorm:"type:text"` // inline encoded image, may be empty
	Skills       []string  `json:"skills" gorm:"serializer:json;type:text" validate:"required,min=1,dive,required"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Price        *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Phone        string    `json:"phone,omitempty" validate:"omitempty,indianphone"`
	Aadhaar      string    `json:"aadhaar,omitempty" validate:"omitempty,aadhaar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	phonePattern   = regexp.MustCompile(`^[6-9]\d{9}$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
)

// NewValidator returns a validator with the custom tags used by the models:
// "indianphone" (10 digits starting 6-9) and "aadhaar" (exactly 12 digits).
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("indianphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return aadhaarPattern.MatchString(fl.Field().String())
	})
	return v
}
