// Package service 文档库业务逻辑
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/markdown"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/repository"
)

// DocumentService 文档库：入库、查询与渲染
type DocumentService struct {
	repo     repository.DocumentRepository
	renderer *markdown.Renderer
}

func NewDocumentService(repo repository.DocumentRepository) *DocumentService {
	return &DocumentService{
		repo:     repo,
		renderer: markdown.NewRenderer(),
	}
}

// List 列出全部文档
func (s *DocumentService) List() ([]model.Document, error) {
	return s.repo.List()
}

// Get 按对外标识取文档
func (s *DocumentService) Get(uid string) (*model.Document, error) {
	return s.repo.GetByUID(uid)
}

// Children 列出某文档派生出的追加研究文档
func (s *DocumentService) Children(uid string) ([]model.Document, error) {
	parent, err := s.repo.GetByUID(uid)
	if err != nil {
		return nil, err
	}
	return s.repo.GetChildren(parent.ID)
}

// Create 新建文档。标题必填，对外标识由服务端生成。
// parentUID 非空时建立追加研究的父子关系。
func (s *DocumentService) Create(title, framework, content, parentUID string) (*model.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("document title is required")
	}

	doc := &model.Document{
		UID:       uuid.New().String(),
		Title:     title,
		Framework: framework,
		Content:   content,
	}

	if parentUID != "" {
		parent, err := s.repo.GetByUID(parentUID)
		if err != nil {
			return nil, fmt.Errorf("parent document not found: %w", err)
		}
		doc.ParentID = &parent.ID
	}

	if err := s.repo.Create(doc); err != nil {
		klog.Errorf("文档入库失败: title=%s, err=%v", title, err)
		return nil, err
	}
	klog.V(6).Infof("文档已入库: uid=%s, title=%s", doc.UID, doc.Title)
	return doc, nil
}

// Render 渲染文档为带锚点的查看器文档
func (s *DocumentService) Render(doc *model.Document) *markdown.Document {
	return s.renderer.Render(doc.Title, doc.Content)
}

// Delete 删除文档
func (s *DocumentService) Delete(uid string) error {
	doc, err := s.repo.GetByUID(uid)
	if err != nil {
		return err
	}
	return s.repo.Delete(doc.ID)
}
