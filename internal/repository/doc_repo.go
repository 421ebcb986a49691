package repository

import (
	"errors"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) List() ([]model.Document, error) {
	var docs []model.Document
	err := r.db.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Get(id uint) (*model.Document, error) {
	var doc model.Document
	err := r.db.First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) GetByUID(uid string) (*model.Document, error) {
	var doc model.Document
	err := r.db.Where("uid = ?", uid).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) GetChildren(parentID uint) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.Where("parent_id = ?", parentID).
		Order("created_at").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Save(doc *model.Document) error {
	return r.db.Save(doc).Error
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Document{}, id).Error
}
