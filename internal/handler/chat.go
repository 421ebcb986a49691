package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/exporter"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/service"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/session"
)

type ChatHandler struct {
	controller *session.Controller
	docs       *service.DocumentService
	exporter   *exporter.Exporter
}

func NewChatHandler(controller *session.Controller, docs *service.DocumentService, exp *exporter.Exporter) *ChatHandler {
	return &ChatHandler{
		controller: controller,
		docs:       docs,
		exporter:   exp,
	}
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask 提交一个关于当前文档的问题
func (h *ChatHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.controller.SubmitQuestion(c.Request.Context(), req.Question); err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyQuestion):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, session.ErrNoDocument):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, session.ErrInputDisabled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			klog.Errorf("提问处理失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, h.controller.Snapshot())
}

// Session 返回当前会话的只读快照
func (h *ChatHandler) Session(c *gin.Context) {
	snap := h.controller.Snapshot()
	if snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no document open"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// CloseStream 取消当前活动流。没有活动流时也返回成功。
func (h *ChatHandler) CloseStream(c *gin.Context) {
	h.controller.CloseStream()
	c.JSON(http.StatusOK, gin.H{"message": "stream closed"})
}

// ExportTranscript 把当前会话转录导出为 markdown 文件
func (h *ChatHandler) ExportTranscript(c *gin.Context) {
	snap := h.controller.Snapshot()
	if snap == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no document open"})
		return
	}

	doc, err := h.docs.Get(snap.DocUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	path, err := h.exporter.ExportTranscript(doc, snap.Messages)
	if err != nil {
		if errors.Is(err, exporter.ErrNothingToExport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		klog.Errorf("转录导出失败: uid=%s, err=%v", doc.UID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}
