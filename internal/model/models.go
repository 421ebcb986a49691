package model

import (
	"time"
)

// Document 研究文档，由研究后端生成后入库
type Document struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UID       string    `json:"uid" gorm:"size:64;uniqueIndex"` // UUID，对外标识
	Title     string    `json:"title" gorm:"size:255;not null"`
	Framework string    `json:"framework" gorm:"size:100"` // 生成该文档的研究框架
	Content   string    `json:"content" gorm:"type:text"`  // 原始 markdown
	ParentID  *uint     `json:"parent_id" gorm:"index"`    // follow-up 研究的父文档
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportRecord 文档导出记录
type ExportRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DocumentID uint      `json:"document_id" gorm:"index;not null"`
	Kind       string    `json:"kind" gorm:"size:20"` // pdf, transcript
	Filename   string    `json:"filename" gorm:"size:255"`
	Status     string    `json:"status" gorm:"size:20;default:done"` // done, failed
	ErrorMsg   string    `json:"error_msg" gorm:"size:1000"`
	CreatedAt  time.Time `json:"created_at"`
}
