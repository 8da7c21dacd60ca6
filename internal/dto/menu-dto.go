package dto

// MenuNode is one node of the navigation tree. Children is always
// present, an empty slice when the node is a leaf.
type MenuNode struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Path           string     `json:"path"`
	Component      string     `json:"component"`
	Icon           string     `json:"icon"`
	PermissionCode string     `json:"permissionCode"`
	Children       []MenuNode `json:"children"`
}
