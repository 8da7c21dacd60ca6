package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/repository"
)

// maxPasteBytes caps stored content; image pastes arrive as data URLs and
// dominate the size distribution.
const maxPasteBytes = 2 << 20

type PasteService interface {
	CreatePaste(userID uint, input dto.CreatePasteRequest) (*domain.Paste, error)
	GetMyPastes(userID uint) ([]domain.Paste, error)
	GetPublicPastes() ([]domain.Paste, error)
	GetPaste(pasteID, userID uint) (*domain.Paste, error)
	UpdatePaste(pasteID, userID uint, input dto.UpdatePasteRequest) (*domain.Paste, error)
	DeletePaste(pasteID, userID uint) error
}

type pasteService struct {
	repo repository.PasteRepository
}

func NewPasteService(repo repository.PasteRepository) PasteService {
	return &pasteService{repo: repo}
}

func (s *pasteService) CreatePaste(userID uint, input dto.CreatePasteRequest) (*domain.Paste, error) {
	content := input.Content
	if strings.TrimSpace(content) == "" {
		return nil, invalidf("content is required")
	}
	if len(content) > maxPasteBytes {
		return nil, invalidf("content exceeds %d bytes", maxPasteBytes)
	}

	contentType, err := normalizeContentType(input.ContentType)
	if err != nil {
		return nil, err
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	paste := &domain.Paste{
		Content:     content,
		ContentType: contentType,
		CreatorID:   userID,
		IsPublic:    isPublic,
	}
	if err := s.repo.CreatePaste(paste); err != nil {
		return nil, fmt.Errorf("create paste: %w", err)
	}
	return paste, nil
}

// GetMyPastes returns the caller's own pastes followed by everyone's
// public ones, both newest first.
func (s *pasteService) GetMyPastes(userID uint) ([]domain.Paste, error) {
	mine, err := s.repo.FindPastesByCreator(userID)
	if err != nil {
		return nil, err
	}
	public, err := s.repo.FindPublicPastes()
	if err != nil {
		return nil, err
	}
	return append(mine, public...), nil
}

func (s *pasteService) GetPublicPastes() ([]domain.Paste, error) {
	return s.repo.FindPublicPastes()
}

// GetPaste returns a paste when it is public or owned by the caller.
func (s *pasteService) GetPaste(pasteID, userID uint) (*domain.Paste, error) {
	paste, err := s.findPaste(pasteID)
	if err != nil {
		return nil, err
	}
	if !paste.IsPublic && paste.CreatorID != userID {
		return nil, ErrForbidden
	}
	return paste, nil
}

func (s *pasteService) UpdatePaste(pasteID, userID uint, input dto.UpdatePasteRequest) (*domain.Paste, error) {
	paste, err := s.findPaste(pasteID)
	if err != nil {
		return nil, err
	}
	if paste.CreatorID != userID {
		return nil, ErrForbidden
	}

	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, invalidf("content is required")
		}
		if len(*input.Content) > maxPasteBytes {
			return nil, invalidf("content exceeds %d bytes", maxPasteBytes)
		}
		paste.Content = *input.Content
	}
	if input.ContentType != nil {
		contentType, err := normalizeContentType(*input.ContentType)
		if err != nil {
			return nil, err
		}
		paste.ContentType = contentType
	}
	if input.IsPublic != nil {
		paste.IsPublic = *input.IsPublic
	}

	if err := s.repo.SavePaste(paste); err != nil {
		return nil, fmt.Errorf("save paste: %w", err)
	}
	return paste, nil
}

func (s *pasteService) DeletePaste(pasteID, userID uint) error {
	paste, err := s.findPaste(pasteID)
	if err != nil {
		return err
	}
	if paste.CreatorID != userID {
		return ErrForbidden
	}
	return s.repo.DeletePaste(pasteID)
}

func (s *pasteService) findPaste(pasteID uint) (*domain.Paste, error) {
	paste, err := s.repo.FindPasteByID(pasteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("paste %d: %w", pasteID, ErrNotFound)
		}
		return nil, err
	}
	return paste, nil
}

func normalizeContentType(contentType string) (string, error) {
	switch contentType {
	case "":
		return domain.PasteTypeText, nil
	case domain.PasteTypeText, domain.PasteTypeImage:
		return contentType, nil
	default:
		return "", invalidf("contentType must be %q or %q", domain.PasteTypeText, domain.PasteTypeImage)
	}
}
