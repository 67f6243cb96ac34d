package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"udaanhub/internal/handlers"
	"udaanhub/internal/repositories"
	"udaanhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// testApp wires the app on in-memory repositories, mirroring the DSN-less
// path of main.
func testApp() *fiber.App {
	mockUsers := repositories.NewMockUserRepository()
	profileRepo := repositories.NewMockArtisanProfileRepository(mockUsers)

	authService := services.NewAuthService(mockUsers, "test_jwt_secret", bcrypt.MinCost)
	artisanService := services.NewArtisanService(profileRepo, nil)

	authHandler := handlers.NewAuthHandler(authService)
	artisanHandler := handlers.NewArtisanHandler(artisanService, authService)

	return newApp(authHandler, artisanHandler)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRootBanner(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "UdaanHub backend is running")
}

func TestHealthCheck(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
}

func TestUnmatchedRoute(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/no/such/route", nil), -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Route not found", body["message"])
}

func TestInMemoryWiring(t *testing.T) {
	app := testApp()

	// The in-memory repositories support the same register/create flow as
	// the database-backed ones.
	payload := `{"name":"Mem","email":"mem@x.com","password":"secret1","role":"artisan"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
