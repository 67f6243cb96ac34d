package repositories_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"udaanhub/internal/models"
	"udaanhub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.ArtisanProfile{}))
	return db
}

func createUser(t *testing.T, repo repositories.UserRepository, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed-password",
		Role:     models.RoleArtisan,
	}
	assert.NoError(t, repo.Create(user))
	return user
}

func TestGORMUserRepository_EmailUniqueness(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	createUser(t, repo, "unique@x.com")

	// A second insert with the same email is stopped by the unique index,
	// not by an application-level check.
	dup := &models.User{Name: "Other", Email: "unique@x.com", Password: "hash2"}
	assert.ErrorIs(t, repo.Create(dup), repositories.ErrDuplicateEmail)
}

func TestGORMUserRepository_GetByIDExcludesPassword(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	created := createUser(t, repo, "hidden@x.com")

	got, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "hidden@x.com", got.Email)
	assert.Empty(t, got.Password)

	// Login path still sees the hash.
	byEmail, err := repo.GetByEmail("hidden@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "hashed-password", byEmail.Password)

	_, err = repo.GetByID("no-such-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMArtisanProfileRepository_OwnerUniqueness(t *testing.T) {
	db := openTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMArtisanProfileRepository(db)

	owner := createUser(t, userRepo, "owner@x.com")

	first := &models.ArtisanProfile{UserID: owner.ID, Skills: []string{"Pottery"}}
	assert.NoError(t, profileRepo.Create(first))

	// The user_id unique index rejects a second profile even when no
	// service-level existence check ran.
	second := &models.ArtisanProfile{UserID: owner.ID, Skills: []string{"Weaving"}}
	assert.ErrorIs(t, profileRepo.Create(second), repositories.ErrDuplicateProfile)

	stored, err := profileRepo.GetByUserID(owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, []string{"Pottery"}, stored.Skills)
}

func TestMockArtisanProfileRepository_ConcurrentCreateSameOwner(t *testing.T) {
	repo := repositories.NewMockArtisanProfileRepository(nil)

	// The uniqueness guard runs under the same lock as the insert, so racing
	// writers for one owner never both succeed.
	const writers = 16
	results := make(chan error, writers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < writers; i++ {
		go func(i int) {
			start.Wait()
			profile := &models.ArtisanProfile{
				UserID: "racing-owner",
				Skills: []string{fmt.Sprintf("Skill %d", i)},
			}
			results <- repo.Create(profile)
		}(i)
	}
	start.Done()

	var created, rejected int
	for i := 0; i < writers; i++ {
		err := <-results
		switch {
		case err == nil:
			created++
		case assert.ErrorIs(t, err, repositories.ErrDuplicateProfile):
			rejected++
		}
	}
	assert.Equal(t, 1, created, "exactly one writer should win")
	assert.Equal(t, writers-1, rejected)

	stored, err := repo.GetByUserID("racing-owner")
	assert.NoError(t, err)
	assert.NotNil(t, stored)

	all, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGORMArtisanProfileRepository_OwnerJoin(t *testing.T) {
	db := openTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMArtisanProfileRepository(db)

	owner := createUser(t, userRepo, "join@x.com")
	profile := &models.ArtisanProfile{UserID: owner.ID, Skills: []string{"Pottery"}}
	assert.NoError(t, profileRepo.Create(profile))

	got, err := profileRepo.GetByID(profile.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got.User)
	assert.Equal(t, "join@x.com", got.User.Email)
	assert.Equal(t, models.RoleArtisan, got.User.Role)
	// Password column is excluded at the query layer.
	assert.Empty(t, got.User.Password)

	all, err := profileRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.NotNil(t, all[0].User)
	assert.Empty(t, all[0].User.Password)
}

func TestGORMArtisanProfileRepository_Ordering(t *testing.T) {
	db := openTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMArtisanProfileRepository(db)

	first := createUser(t, userRepo, "first@x.com")
	second := createUser(t, userRepo, "second@x.com")

	// An explicit older timestamp makes the ordering deterministic.
	p1 := &models.ArtisanProfile{UserID: first.ID, Skills: []string{"Pottery"}, CreatedAt: time.Now().Add(-time.Hour)}
	assert.NoError(t, profileRepo.Create(p1))
	p2 := &models.ArtisanProfile{UserID: second.ID, Skills: []string{"Weaving"}}
	assert.NoError(t, profileRepo.Create(p2))

	all, err := profileRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, p2.ID, all[0].ID, "newest profile should come first")
	assert.Equal(t, p1.ID, all[1].ID)
}

func TestGORMArtisanProfileRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMArtisanProfileRepository(db)

	owner := createUser(t, userRepo, "gone@x.com")
	profile := &models.ArtisanProfile{UserID: owner.ID, Skills: []string{"Pottery"}}
	assert.NoError(t, profileRepo.Create(profile))

	assert.NoError(t, profileRepo.Delete(profile.ID))
	_, err := profileRepo.GetByID(profile.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Deleting again reports not found; the row is gone for good.
	assert.ErrorIs(t, profileRepo.Delete(profile.ID), repositories.ErrNotFound)
}
