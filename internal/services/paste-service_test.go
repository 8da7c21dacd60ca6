package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/repository"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func newPasteFixture(t *testing.T) (PasteService, domain.User, domain.User) {
	t.Helper()

	db := newTestDB(t)
	roles := seedTestRoles(t, db)
	owner := createTestUser(t, db, "owner", "owner@example.com", roles[domain.RoleUser].ID)
	other := createTestUser(t, db, "other", "other@example.com", roles[domain.RoleUser].ID)
	return NewPasteService(repository.NewPasteRepository(db)), owner, other
}

func TestCreatePasteDefaults(t *testing.T) {
	svc, owner, _ := newPasteFixture(t)

	paste, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: "hello"})

	require.NoError(t, err)
	assert.Equal(t, domain.PasteTypeText, paste.ContentType)
	assert.True(t, paste.IsPublic)
	assert.Equal(t, owner.ID, paste.CreatorID)
}

func TestCreatePasteValidation(t *testing.T) {
	svc, owner, _ := newPasteFixture(t)

	_, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: "   "})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: "x", ContentType: "video"})
	require.ErrorAs(t, err, &ve)

	_, err = svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: strings.Repeat("a", (2<<20)+1)})
	require.ErrorAs(t, err, &ve)
}

func TestGetPasteVisibility(t *testing.T) {
	svc, owner, other := newPasteFixture(t)

	private, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{
		Content:  "secret",
		IsPublic: boolPtr(false),
	})
	require.NoError(t, err)

	// owner can read a private paste
	got, err := svc.GetPaste(private.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Content)

	// someone else cannot
	_, err = svc.GetPaste(private.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetPaste(9999, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePasteOwnership(t *testing.T) {
	svc, owner, other := newPasteFixture(t)

	paste, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: "v1"})
	require.NoError(t, err)

	_, err = svc.UpdatePaste(paste.ID, other.ID, dto.UpdatePasteRequest{Content: strPtr("hijack")})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdatePaste(paste.ID, owner.ID, dto.UpdatePasteRequest{
		Content:  strPtr("v2"),
		IsPublic: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
	assert.False(t, updated.IsPublic)
}

func TestDeletePasteOwnership(t *testing.T) {
	svc, owner, other := newPasteFixture(t)

	paste, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: "bye"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePaste(paste.ID, other.ID), ErrForbidden)
	require.NoError(t, svc.DeletePaste(paste.ID, owner.ID))
	assert.ErrorIs(t, svc.DeletePaste(paste.ID, owner.ID), ErrNotFound)
}

func TestGetMyPastesIncludesPublic(t *testing.T) {
	svc, owner, other := newPasteFixture(t)

	_, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: "mine-private", IsPublic: boolPtr(false)})
	require.NoError(t, err)
	_, err = svc.CreatePaste(other.ID, dto.CreatePasteRequest{Content: "theirs-public"})
	require.NoError(t, err)
	_, err = svc.CreatePaste(other.ID, dto.CreatePasteRequest{Content: "theirs-private", IsPublic: boolPtr(false)})
	require.NoError(t, err)

	pastes, err := svc.GetMyPastes(owner.ID)
	require.NoError(t, err)

	contents := make([]string, 0, len(pastes))
	for _, p := range pastes {
		contents = append(contents, p.Content)
	}
	assert.Contains(t, contents, "mine-private")
	assert.Contains(t, contents, "theirs-public")
	assert.NotContains(t, contents, "theirs-private")

	public, err := svc.GetPublicPastes()
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "theirs-public", public[0].Content)
}

func TestPrivatePasteStoredPrivate(t *testing.T) {
	db := newTestDB(t)
	roles := seedTestRoles(t, db)
	owner := createTestUser(t, db, "owner", "owner@example.com", roles[domain.RoleUser].ID)
	svc := NewPasteService(repository.NewPasteRepository(db))

	paste, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{
		Content:  "secret",
		IsPublic: boolPtr(false),
	})
	require.NoError(t, err)

	// the flag must survive the insert as written, not revert to a default
	var stored domain.Paste
	require.NoError(t, db.First(&stored, paste.ID).Error)
	assert.False(t, stored.IsPublic)
}

func TestPasteJSONOmitsCreator(t *testing.T) {
	svc, owner, _ := newPasteFixture(t)

	paste, err := svc.CreatePaste(owner.ID, dto.CreatePasteRequest{Content: "hello"})
	require.NoError(t, err)

	data, err := json.Marshal(paste)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"creator"`)
}
