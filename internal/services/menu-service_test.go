package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/repository"
)

func TestBuildMenuTreeNesting(t *testing.T) {
	menus := []domain.Menu{
		{ID: 1, ParentID: 0, Sort: 1},
		{ID: 2, ParentID: 0, Sort: 2},
		{ID: 3, ParentID: 1, Sort: 1},
	}

	tree, dropped := BuildMenuTree(menus)

	assert.Equal(t, 0, dropped)
	require.Len(t, tree, 2)
	assert.Equal(t, uint(1), tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, uint(3), tree[0].Children[0].ID)
	assert.Empty(t, tree[0].Children[0].Children)
	assert.NotNil(t, tree[0].Children[0].Children)
	assert.Equal(t, uint(2), tree[1].ID)
	assert.Empty(t, tree[1].Children)
}

func TestBuildMenuTreeSiblingOrder(t *testing.T) {
	// Input arrives pre-sorted by sort ascending; the tree must keep
	// that order among siblings at every level.
	menus := []domain.Menu{
		{ID: 10, ParentID: 0, Sort: 1},
		{ID: 20, ParentID: 0, Sort: 2},
		{ID: 11, ParentID: 10, Sort: 1},
		{ID: 12, ParentID: 10, Sort: 2},
		{ID: 13, ParentID: 10, Sort: 3},
	}

	tree, dropped := BuildMenuTree(menus)

	assert.Equal(t, 0, dropped)
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Children, 3)
	assert.Equal(t, uint(11), tree[0].Children[0].ID)
	assert.Equal(t, uint(12), tree[0].Children[1].ID)
	assert.Equal(t, uint(13), tree[0].Children[2].ID)
}

func TestBuildMenuTreeEveryRowOnce(t *testing.T) {
	menus := []domain.Menu{
		{ID: 1, ParentID: 0},
		{ID: 2, ParentID: 1},
		{ID: 3, ParentID: 2},
		{ID: 4, ParentID: 1},
		{ID: 5, ParentID: 0},
	}

	tree, dropped := BuildMenuTree(menus)

	assert.Equal(t, 0, dropped)
	seen := map[uint]int{}
	var walk func(nodes []dto.MenuNode)
	walk = func(nodes []dto.MenuNode) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Children)
		}
	}
	walk(tree)

	assert.Len(t, seen, len(menus))
	for id, count := range seen {
		assert.Equalf(t, 1, count, "menu %d emitted %d times", id, count)
	}
}

func TestBuildMenuTreeDropsUnreachableRows(t *testing.T) {
	menus := []domain.Menu{
		{ID: 1, ParentID: 0},
		// parent 99 does not exist
		{ID: 2, ParentID: 99},
		// 3 and 4 form a cycle, never reachable from a root
		{ID: 3, ParentID: 4},
		{ID: 4, ParentID: 3},
	}

	tree, dropped := BuildMenuTree(menus)

	require.Len(t, tree, 1)
	assert.Equal(t, uint(1), tree[0].ID)
	assert.Equal(t, 3, dropped)
}

func TestBuildMenuTreeEmptyInput(t *testing.T) {
	tree, dropped := BuildMenuTree(nil)

	assert.NotNil(t, tree)
	assert.Empty(t, tree)
	assert.Equal(t, 0, dropped)
}

func TestMenuServiceGetUserMenus(t *testing.T) {
	db := newTestDB(t)
	roles := seedTestRoles(t, db)

	menus := []domain.Menu{
		{Name: "Dashboard", Sort: 1, Visible: true, PermissionCode: "dashboard"},
		{Name: "Users", Sort: 2, Visible: true, PermissionCode: "user:view"},
		{Name: "Hidden", Sort: 3, Visible: false, PermissionCode: "hidden:view"},
	}
	for i := range menus {
		require.NoError(t, db.Create(&menus[i]).Error)
	}
	userRole := roles[domain.RoleUser]
	for _, m := range menus {
		require.NoError(t, db.Create(&domain.RoleMenu{RoleID: userRole.ID, MenuID: m.ID}).Error)
	}

	svc := NewMenuService(repository.NewMenuRepository(db))
	tree, err := svc.GetUserMenus(userRole.ID)

	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Dashboard", tree[0].Name)
	assert.Equal(t, "Users", tree[1].Name)
}

func TestMenuServiceGetAllMenusIncludesHidden(t *testing.T) {
	db := newTestDB(t)

	for _, m := range []domain.Menu{
		{Name: "Visible", Sort: 1, Visible: true},
		{Name: "Hidden", Sort: 2, Visible: false},
	} {
		require.NoError(t, db.Create(&m).Error)
	}

	svc := NewMenuService(repository.NewMenuRepository(db))
	tree, err := svc.GetAllMenus()

	require.NoError(t, err)
	assert.Len(t, tree, 2)
}
