package dto

type CreatePasteRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	IsPublic    *bool  `json:"isPublic"`
}

// UpdatePasteRequest patches a paste; nil fields are left untouched.
type UpdatePasteRequest struct {
	Content     *string `json:"content"`
	ContentType *string `json:"contentType"`
	IsPublic    *bool   `json:"isPublic"`
}
