package services

import (
	"log"

	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/repository"
)

type MenuService interface {
	GetUserMenus(roleID uint) ([]dto.MenuNode, error)
	GetAllMenus() ([]dto.MenuNode, error)
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) GetUserMenus(roleID uint) ([]dto.MenuNode, error) {
	menus, err := s.menuRepo.GetMenusByRoleID(roleID)
	if err != nil {
		return nil, err
	}
	tree, dropped := BuildMenuTree(menus)
	if dropped > 0 {
		log.Printf("menu tree for role %d dropped %d unreachable rows", roleID, dropped)
	}
	return tree, nil
}

func (s *menuService) GetAllMenus() ([]dto.MenuNode, error) {
	menus, err := s.menuRepo.GetAllMenus()
	if err != nil {
		return nil, err
	}
	tree, dropped := BuildMenuTree(menus)
	if dropped > 0 {
		log.Printf("full menu tree dropped %d unreachable rows", dropped)
	}
	return tree, nil
}

// BuildMenuTree reshapes flat parent-pointer rows into a nested tree.
// Input arrives sorted by sort ascending; sibling order follows input
// order. Rows whose parent chain never reaches a root (missing parent or
// cycle) are excluded, and their count is returned alongside the tree.
func BuildMenuTree(menus []domain.Menu) ([]dto.MenuNode, int) {
	// Index children by parent id once instead of re-filtering per node.
	children := make(map[uint][]int, len(menus))
	for i, m := range menus {
		children[m.ParentID] = append(children[m.ParentID], i)
	}

	emitted := 0
	seen := make(map[uint]bool, len(menus))

	var build func(parentID uint) []dto.MenuNode
	build = func(parentID uint) []dto.MenuNode {
		nodes := make([]dto.MenuNode, 0, len(children[parentID]))
		for _, i := range children[parentID] {
			m := menus[i]
			// seen guards against duplicated ids and self-references.
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			emitted++
			nodes = append(nodes, dto.MenuNode{
				ID:             m.ID,
				Name:           m.Name,
				Path:           m.Path,
				Component:      m.Component,
				Icon:           m.Icon,
				PermissionCode: m.PermissionCode,
				Children:       build(m.ID),
			})
		}
		return nodes
	}

	tree := build(0)
	return tree, len(menus) - emitted
}
