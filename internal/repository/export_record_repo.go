package repository

import (
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
	"gorm.io/gorm"
)

type exportRecordRepository struct {
	db *gorm.DB
}

func NewExportRecordRepository(db *gorm.DB) ExportRecordRepository {
	return &exportRecordRepository{db: db}
}

func (r *exportRecordRepository) Create(rec *model.ExportRecord) error {
	return r.db.Create(rec).Error
}

func (r *exportRecordRepository) GetByDocument(docID uint) ([]model.ExportRecord, error) {
	var recs []model.ExportRecord
	err := r.db.Where("document_id = ?", docID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}
