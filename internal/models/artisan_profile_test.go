package models_test

import (
	"testing"

	"udaanhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProfileValidation(t *testing.T) {
	validate := models.NewValidator()

	base := func() models.ArtisanProfile {
		return models.ArtisanProfile{
			UserID: "user-1",
			Skills: []string{"Pottery"},
		}
	}

	t.Run("minimal profile passes", func(t *testing.T) {
		p := base()
		assert.NoError(t, validate.Struct(p))
	})

	t.Run("empty skills fail", func(t *testing.T) {
		p := base()
		p.Skills = []string{}
		assert.Error(t, validate.Struct(p))
	})

	t.Run("blank skill entry fails", func(t *testing.T) {
		p := base()
		p.Skills = []string{""}
		assert.Error(t, validate.Struct(p))
	})

	t.Run("phone pattern", func(t *testing.T) {
		p := base()
		p.Phone = "9876543210"
		assert.NoError(t, validate.Struct(p))

		p.Phone = "1234567890" // must start 6-9
		assert.Error(t, validate.Struct(p))

		p.Phone = "98765" // too short
		assert.Error(t, validate.Struct(p))

		p.Phone = "" // optional
		assert.NoError(t, validate.Struct(p))
	})

	t.Run("aadhaar pattern", func(t *testing.T) {
		p := base()
		p.Aadhaar = "123456789012"
		assert.NoError(t, validate.Struct(p))

		p.Aadhaar = "12345"
		assert.Error(t, validate.Struct(p))

		p.Aadhaar = "12345678901a"
		assert.Error(t, validate.Struct(p))
	})

	t.Run("price bounds", func(t *testing.T) {
		p := base()
		zero := 0.0
		p.Price = &zero
		assert.NoError(t, validate.Struct(p))

		negative := -5.0
		p.Price = &negative
		assert.Error(t, validate.Struct(p))
	})
}
