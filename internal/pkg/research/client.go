package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/config"
)

// Client 研究后端客户端。提问、追加研究走请求/响应，
// 回答内容通过 OpenStream 的流式通道异步送达。
type Client struct {
	BaseURL       string
	APIKey        string
	EnvironmentID string
	Interaction   string
	HTTPClient    *http.Client
}

// NewClient 创建新的研究后端客户端
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Research.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		BaseURL:       cfg.Research.APIURL,
		APIKey:        cfg.Research.APIKey,
		EnvironmentID: cfg.Research.EnvironmentID,
		Interaction:   cfg.Research.Interaction,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SubmitQuestion 提交针对文档的提问，返回异步工作流标识。
// 任何传输或 API 层失败都折叠为一个普通错误，由调用方转成用户可见提示。
func (c *Client) SubmitQuestion(ctx context.Context, req QuestionRequest) (*QuestionTicket, error) {
	klog.V(6).Infof("提交文档提问: document=%s, question_len=%d", req.DocumentID, len(req.Question))

	body := map[string]any{
		"interaction": c.Interaction,
		"environment": c.EnvironmentID,
		"data": map[string]any{
			"document_id":          req.DocumentID,
			"question":             req.Question,
			"conversation_history": req.ConversationHistory,
		},
	}

	var ticket QuestionTicket
	if err := c.postJSON(ctx, "/execute/async", body, &ticket); err != nil {
		return nil, fmt.Errorf("question submission failed: %w", err)
	}
	if ticket.WorkflowID == "" || ticket.RunID == "" {
		return nil, fmt.Errorf("question submission failed: empty workflow identifiers")
	}

	klog.V(6).Infof("提问已受理: workflowId=%s, runId=%s", ticket.WorkflowID, ticket.RunID)
	return &ticket, nil
}

// SubmitResearch 提交追加研究请求，作用域为指定的父文档
func (c *Client) SubmitResearch(ctx context.Context, req ResearchRequest) error {
	klog.V(6).Infof("提交追加研究: parent=%s, modifiers=%d", req.ParentDocumentID, len(req.Modifiers))

	body := map[string]any{
		"interaction": c.Interaction,
		"environment": c.EnvironmentID,
		"data": map[string]any{
			"context":            req.Context,
			"modifiers":          req.Modifiers,
			"parent_document_id": req.ParentDocumentID,
		},
	}

	if err := c.postJSON(ctx, "/execute/async", body, nil); err != nil {
		return fmt.Errorf("research submission failed: %w", err)
	}
	return nil
}

// postJSON 发送 JSON 请求并解析响应
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, truncate(string(respBody), 200))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
