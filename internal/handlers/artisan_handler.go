package handlers

import (
	"errors"
	"log"

	"udaanhub/internal/middleware"
	"udaanhub/internal/models"
	"udaanhub/internal/repositories"
	"udaanhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ArtisanHandler handles HTTP requests for artisan profiles.
type ArtisanHandler struct {
	service     *services.ArtisanService
	authService *services.AuthService
}

// NewArtisanHandler creates a new ArtisanHandler.
func NewArtisanHandler(service *services.ArtisanService, authService *services.AuthService) *ArtisanHandler {
	return &ArtisanHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterRoutes registers the artisan routes with the Fiber app.
// The fixed "/me" routes must be registered before the dynamic "/:id" route
// so "me" is never interpreted as a profile ID.
func (h *ArtisanHandler) RegisterRoutes(router fiber.Router) {
	protect := middleware.AuthRequired(h.authService)
	artisanOnly := middleware.RoleRequired(models.RoleArtisan)

	artisanRoutes := router.Group("/artisans")
	artisanRoutes.Get("/", h.HandleGetAllProfiles)
	artisanRoutes.Get("/me", protect, artisanOnly, h.HandleGetMyProfile)
	artisanRoutes.Post("/", protect, artisanOnly, h.HandleCreateProfile)
	artisanRoutes.Put("/me", protect, artisanOnly, h.HandleUpdateProfile)
	artisanRoutes.Delete("/me", protect, artisanOnly, h.HandleDeleteProfile)
	artisanRoutes.Get("/:id", h.HandleGetProfileByID)
}

// HandleCreateProfile creates the caller's artisan profile.
func (h *ArtisanHandler) HandleCreateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated",
		})
	}

	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create profile body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	profile, err := h.service.CreateProfile(user.ID, input)
	if err != nil {
		return profileErrorResponse(c, err, "Could not create profile")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Artisan profile created successfully",
		"profile": profile,
	})
}

// HandleGetAllProfiles returns every artisan profile, newest first.
func (h *ArtisanHandler) HandleGetAllProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.GetAllProfiles()
	if err != nil {
		log.Printf("Error getting all profiles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profiles",
		})
	}
	return c.JSON(fiber.Map{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

// HandleGetProfileByID returns a single profile. A malformed ID matches no
// record and reports 404, never a server error.
func (h *ArtisanHandler) HandleGetProfileByID(c *fiber.Ctx) error {
	profile, err := h.service.GetProfileByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Artisan profile not found",
			})
		}
		log.Printf("Error getting profile by ID: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
		})
	}
	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// HandleGetMyProfile returns the caller's own profile.
func (h *ArtisanHandler) HandleGetMyProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated",
		})
	}

	profile, err := h.service.GetMyProfile(user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found. Create a profile first.",
			})
		}
		log.Printf("Error getting profile for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
		})
	}
	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// HandleUpdateProfile partially updates the caller's profile.
func (h *ArtisanHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated",
		})
	}

	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update profile body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	profile, err := h.service.UpdateMyProfile(user.ID, input)
	if err != nil {
		return profileErrorResponse(c, err, "Could not update profile")
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// HandleDeleteProfile permanently removes the caller's profile.
func (h *ArtisanHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated",
		})
	}

	if err := h.service.DeleteMyProfile(user.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("Error deleting profile for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile deleted successfully",
	})
}

// profileErrorResponse maps create/update failures to an HTTP response.
func profileErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrSkillsRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least one skill is required",
		})
	case errors.Is(err, services.ErrNegativePrice):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Price must be a positive number",
		})
	case errors.Is(err, repositories.ErrDuplicateProfile):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Profile already exists. Use update endpoint to modify your profile.",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Profile not found. Create a profile first.",
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	log.Printf("Profile operation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
	})
}
