package repository

import (
	"errors"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type DocumentRepository interface {
	Create(doc *model.Document) error
	List() ([]model.Document, error)
	Get(id uint) (*model.Document, error)
	GetByUID(uid string) (*model.Document, error)
	GetChildren(parentID uint) ([]model.Document, error)
	Save(doc *model.Document) error
	Delete(id uint) error
}

type ExportRecordRepository interface {
	Create(rec *model.ExportRecord) error
	GetByDocument(docID uint) ([]model.ExportRecord, error)
}
