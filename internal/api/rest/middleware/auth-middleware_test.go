package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/helper"
	"github.com/yangezz/paste_service/internal/helper/utils"
	"github.com/yangezz/paste_service/internal/repository"
)

type fixture struct {
	app   *fiber.App
	db    *gorm.DB
	auth  helper.Auth
	roles map[string]domain.Role
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Menu{},
		&domain.RoleMenu{},
	))

	roles := map[string]domain.Role{}
	for _, r := range []domain.Role{
		{Name: domain.RoleUser, Status: true},
		{Name: domain.RoleAdmin, IsAdmin: true, Status: true},
		{Name: domain.RoleSuperAdmin, IsAdmin: true, IsSuperAdmin: true, Status: true},
	} {
		require.NoError(t, db.Create(&r).Error)
		roles[r.Name] = r
	}

	auth := helper.SetupAuth("middleware-secret")
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	app := fiber.New()
	probe := func(ctx *fiber.Ctx) error {
		return utils.Ok(ctx, nil, "ok")
	}
	app.Get("/open", AuthRequired(auth, userRepo), probe)
	app.Get("/admin", AuthRequired(auth, userRepo), AdminOnly(), probe)
	app.Get("/super", AuthRequired(auth, userRepo), SuperAdminOnly(), probe)
	app.Get("/perm", AuthRequired(auth, userRepo), RequirePermission("user:view", menuRepo), probe)

	return &fixture{app: app, db: db, auth: auth, roles: roles}
}

func (f *fixture) createUser(t *testing.T, name string, roleID uint, enabled bool) domain.User {
	t.Helper()

	user := domain.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "irrelevant",
		Status:       enabled,
		RoleID:       roleID,
	}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func (f *fixture) request(t *testing.T, path, token string) (*http.Response, utils.Envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	var env utils.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func (f *fixture) token(t *testing.T, user domain.User) string {
	t.Helper()

	token, err := f.auth.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	return token
}

func TestAuthRequiredMissingToken(t *testing.T) {
	f := newFixture(t)

	resp, env := f.request(t, "/open", "")

	// business failure rides the envelope, not the transport status
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, utils.CodeUnauthorized, env.Code)
}

func TestAuthRequiredBadSignature(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", f.roles[domain.RoleUser].ID, true)

	resp, env := f.request(t, "/open", f.token(t, user)+"xx")

	// the token gate is the one transport-401 site
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, utils.CodeUnauthorized, env.Code)
}

func TestAuthRequiredDisabledUser(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", f.roles[domain.RoleUser].ID, false)

	resp, env := f.request(t, "/open", f.token(t, user))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, utils.CodeUnauthorized, env.Code)
}

func TestAuthRequiredDeletedUser(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "gone", f.roles[domain.RoleUser].ID, true)
	token := f.token(t, user)
	require.NoError(t, f.db.Delete(&domain.User{}, user.ID).Error)

	resp, env := f.request(t, "/open", token)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, utils.CodeUnauthorized, env.Code)
}

func TestAdminOnly(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "root", f.roles[domain.RoleAdmin].ID, true)
	regular := f.createUser(t, "carol", f.roles[domain.RoleUser].ID, true)

	_, env := f.request(t, "/admin", f.token(t, admin))
	assert.True(t, env.Success)

	_, env = f.request(t, "/admin", f.token(t, regular))
	assert.Equal(t, utils.CodeForbidden, env.Code)
}

func TestSuperAdminOnly(t *testing.T) {
	f := newFixture(t)
	super := f.createUser(t, "overlord", f.roles[domain.RoleSuperAdmin].ID, true)
	admin := f.createUser(t, "root", f.roles[domain.RoleAdmin].ID, true)

	_, env := f.request(t, "/super", f.token(t, super))
	assert.True(t, env.Success)

	// plain admin is not enough
	_, env = f.request(t, "/super", f.token(t, admin))
	assert.Equal(t, utils.CodeForbidden, env.Code)
}

func TestRequirePermissionGrantPath(t *testing.T) {
	f := newFixture(t)

	menu := domain.Menu{Name: "Users", Visible: true, PermissionCode: "user:view"}
	require.NoError(t, f.db.Create(&menu).Error)
	require.NoError(t, f.db.Create(&domain.RoleMenu{
		RoleID: f.roles[domain.RoleAdmin].ID,
		MenuID: menu.ID,
	}).Error)

	granted := f.createUser(t, "root", f.roles[domain.RoleAdmin].ID, true)
	ungranted := f.createUser(t, "dave", f.roles[domain.RoleUser].ID, true)

	_, env := f.request(t, "/perm", f.token(t, granted))
	assert.True(t, env.Success)

	_, env = f.request(t, "/perm", f.token(t, ungranted))
	assert.Equal(t, utils.CodeForbidden, env.Code)
}

func TestRequirePermissionSuperAdminBypass(t *testing.T) {
	f := newFixture(t)

	// no menus, no grants: a super-admin still passes
	super := f.createUser(t, "overlord", f.roles[domain.RoleSuperAdmin].ID, true)

	_, env := f.request(t, "/perm", f.token(t, super))
	assert.True(t, env.Success)
}
