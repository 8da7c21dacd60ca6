package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yangezz/paste_service/internal/domain"
)

type PasteRepository interface {
	CreatePaste(paste *domain.Paste) error
	FindPasteByID(pasteID uint) (*domain.Paste, error)
	FindPastesByCreator(userID uint) ([]domain.Paste, error)
	FindPublicPastes() ([]domain.Paste, error)
	SavePaste(paste *domain.Paste) error
	DeletePaste(pasteID uint) error
}

type pasteRepository struct {
	db *gorm.DB
}

func NewPasteRepository(db *gorm.DB) PasteRepository {
	return &pasteRepository{db: db}
}

func (r *pasteRepository) CreatePaste(paste *domain.Paste) error {
	if paste == nil {
		return errors.New("nil paste")
	}
	return r.db.Create(paste).Error
}

func (r *pasteRepository) FindPasteByID(pasteID uint) (*domain.Paste, error) {
	paste := &domain.Paste{}
	if err := r.db.First(paste, pasteID).Error; err != nil {
		return nil, err
	}
	return paste, nil
}

func (r *pasteRepository) FindPastesByCreator(userID uint) ([]domain.Paste, error) {
	var pastes []domain.Paste
	err := r.db.
		Where("creator_id = ?", userID).
		Order("created_at DESC").
		Find(&pastes).Error
	if err != nil {
		return nil, err
	}
	return pastes, nil
}

func (r *pasteRepository) FindPublicPastes() ([]domain.Paste, error) {
	var pastes []domain.Paste
	err := r.db.
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&pastes).Error
	if err != nil {
		return nil, err
	}
	return pastes, nil
}

func (r *pasteRepository) SavePaste(paste *domain.Paste) error {
	if paste == nil {
		return errors.New("nil paste")
	}
	return r.db.Save(paste).Error
}

func (r *pasteRepository) DeletePaste(pasteID uint) error {
	return r.db.Delete(&domain.Paste{}, pasteID).Error
}
