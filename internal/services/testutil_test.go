package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/helper"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Menu{},
		&domain.RoleMenu{},
		&domain.Paste{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedTestRoles installs the three base roles and returns them by name.
func seedTestRoles(t *testing.T, db *gorm.DB) map[string]domain.Role {
	t.Helper()

	roles := []domain.Role{
		{Name: domain.RoleUser, Status: true},
		{Name: domain.RoleAdmin, IsAdmin: true, Status: true},
		{Name: domain.RoleSuperAdmin, IsAdmin: true, IsSuperAdmin: true, Status: true},
	}
	out := make(map[string]domain.Role, len(roles))
	for i := range roles {
		if err := db.Create(&roles[i]).Error; err != nil {
			t.Fatalf("seed role %s: %v", roles[i].Name, err)
		}
		out[roles[i].Name] = roles[i]
	}
	return out
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, roleID uint) domain.User {
	t.Helper()

	auth := helper.SetupAuth("test-secret")
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       true,
		RoleID:       roleID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

// stubProducer records published events for assertions.
type stubProducer struct {
	keys []string
}

func (p *stubProducer) PublishMessage(key, value []byte) error {
	p.keys = append(p.keys, string(key))
	return nil
}
