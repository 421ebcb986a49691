// Package followup 追加研究请求的组装与提交
package followup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/pkg/research"
)

var ErrEmptyContext = errors.New("follow-up context is empty")

// ResearchSubmitter 研究生成协作方
type ResearchSubmitter interface {
	SubmitResearch(ctx context.Context, req research.ResearchRequest) error
}

// Request 追加研究请求：自由文本上下文 + 修饰组合 + 父文档
type Request struct {
	Context          string            `json:"context"`
	Modifiers        map[string]string `json:"modifiers"`
	ParentDocumentID string            `json:"parent_document_id"`
}

// Composer 校验并提交追加研究请求
type Composer struct {
	submitter ResearchSubmitter
}

func NewComposer(submitter ResearchSubmitter) *Composer {
	return &Composer{submitter: submitter}
}

// Validate 校验请求：上下文非空白，修饰值落在各组合法取值内。
// 未知修饰组或非法取值一律拒绝。
func (c *Composer) Validate(req Request) error {
	if strings.TrimSpace(req.Context) == "" {
		return ErrEmptyContext
	}
	for group, value := range req.Modifiers {
		allowed, ok := modifierGroups[group]
		if !ok {
			return fmt.Errorf("unknown modifier group: %s", group)
		}
		valid := false
		for _, v := range allowed {
			if v == value {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid value %q for modifier group %s", value, group)
		}
	}
	return nil
}

// Submit 校验通过后提交追加研究。生成过程由研究后端异步完成。
func (c *Composer) Submit(ctx context.Context, req Request) error {
	if err := c.Validate(req); err != nil {
		return err
	}

	klog.V(6).Infof("提交追加研究: parent=%s, modifiers=%v", req.ParentDocumentID, req.Modifiers)
	return c.submitter.SubmitResearch(ctx, research.ResearchRequest{
		Context:          strings.TrimSpace(req.Context),
		Modifiers:        req.Modifiers,
		ParentDocumentID: req.ParentDocumentID,
	})
}

// DefaultsFor 返回框架的默认修饰组合；未配置的框架返回 nil
func DefaultsFor(framework string) map[string]string {
	defaults, ok := FrameworkDefaults[framework]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// HintFor 返回框架的上下文输入提示；未配置时返回空串
func HintFor(framework string) string {
	return ContextHints[framework]
}
