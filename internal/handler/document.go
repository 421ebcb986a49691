package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/exporter"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/markdown"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/navigator"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/repository"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/service"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/session"
)

type DocumentHandler struct {
	docs       *service.DocumentService
	controller *session.Controller
	exporter   *exporter.Exporter
	records    repository.ExportRecordRepository
}

func NewDocumentHandler(docs *service.DocumentService, controller *session.Controller, exp *exporter.Exporter, records repository.ExportRecordRepository) *DocumentHandler {
	return &DocumentHandler{
		docs:       docs,
		controller: controller,
		exporter:   exp,
		records:    records,
	}
}

type createDocumentRequest struct {
	Title     string `json:"title"`
	Framework string `json:"framework"`
	Content   string `json:"content"`
	ParentUID string `json:"parent_uid"`
}

// ViewerDocument 打开文档后的查看器载荷
type ViewerDocument struct {
	UID       string              `json:"uid"`
	Framework string              `json:"framework"`
	TOC       []navigator.TOCItem `json:"toc"`
	*markdown.Document
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.docs.Create(req.Title, req.Framework, req.Content, req.ParentUID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docs.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.docs.Get(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Children(c *gin.Context) {
	children, err := h.docs.Children(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	c.JSON(http.StatusOK, children)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.docs.Delete(c.Param("uid")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Open 打开文档进入查看器：渲染正文并建立会话上下文。
// 渲染失败不拒绝打开，正文换成错误占位内容。
func (h *DocumentHandler) Open(c *gin.Context) {
	doc, err := h.docs.Get(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	rendered := h.docs.Render(doc)
	h.controller.Open(doc.UID, doc.Title, doc.Content, rendered.Outline)

	c.JSON(http.StatusOK, ViewerDocument{
		UID:       doc.UID,
		Framework: doc.Framework,
		TOC:       navigator.BuildTOC(rendered.Outline),
		Document:  rendered,
	})
}

// CloseViewer 关闭查看器：取消活动流并清空会话上下文
func (h *DocumentHandler) CloseViewer(c *gin.Context) {
	h.controller.Close()
	c.JSON(http.StatusOK, gin.H{"message": "closed"})
}

type activeSectionRequest struct {
	Positions []navigator.HeadingPosition `json:"positions"`
}

// ActiveSection 根据标题位置快照计算当前激活章节
func (h *DocumentHandler) ActiveSection(c *gin.Context) {
	var req activeSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"anchor_id": navigator.ActiveAnchor(req.Positions)})
}

// ExportPDF 把文档导出为分页 PDF
func (h *DocumentHandler) ExportPDF(c *gin.Context) {
	doc, err := h.docs.Get(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	rendered := h.docs.Render(doc)
	if rendered.Failed {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "document failed to render"})
		return
	}

	path, err := h.exporter.ExportDocument(c.Request.Context(), doc, rendered.HTML)
	if err != nil {
		if errors.Is(err, exporter.ErrNoContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		klog.Errorf("文档导出失败: uid=%s, err=%v", doc.UID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

// Exports 列出文档的历史导出记录
func (h *DocumentHandler) Exports(c *gin.Context) {
	doc, err := h.docs.Get(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	records, err := h.records.GetByDocument(doc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
