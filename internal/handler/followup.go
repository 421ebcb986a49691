package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/followup"
)

type FollowupHandler struct {
	composer *followup.Composer
}

func NewFollowupHandler(composer *followup.Composer) *FollowupHandler {
	return &FollowupHandler{composer: composer}
}

// Submit 提交追加研究请求
func (h *FollowupHandler) Submit(c *gin.Context) {
	var req followup.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.composer.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.composer.Submit(c.Request.Context(), req); err != nil {
		klog.Errorf("追加研究提交失败: parent=%s, err=%v", req.ParentDocumentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "follow-up research started"})
}

// Frameworks 返回研究框架目录
func (h *FollowupHandler) Frameworks(c *gin.Context) {
	c.JSON(http.StatusOK, followup.ResearchCapabilities)
}

// Hints 返回各框架的上下文输入提示
func (h *FollowupHandler) Hints(c *gin.Context) {
	c.JSON(http.StatusOK, followup.ContextHints)
}

// Defaults 返回指定框架的默认修饰组合
func (h *FollowupHandler) Defaults(c *gin.Context) {
	framework := c.Query("framework")
	if framework == "" {
		c.JSON(http.StatusOK, followup.FrameworkDefaults)
		return
	}

	defaults := followup.DefaultsFor(framework)
	if defaults == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no defaults for framework"})
		return
	}
	c.JSON(http.StatusOK, defaults)
}
