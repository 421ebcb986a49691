package research

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"k8s.io/klog/v2"
)

// OpenStream 打开一条工作流消息流（SSE）。连接与读取都在后台进行，
// 回调在读取协程中触发。取消 ctx 后不再触发任何回调。
// OnComplete / OnError 互斥，至多触发一次。
func (c *Client) OpenStream(ctx context.Context, workflowID, runID string, h StreamHandlers) {
	go c.readStream(ctx, workflowID, runID, h)
}

func (c *Client) readStream(ctx context.Context, workflowID, runID string, h StreamHandlers) {
	url := fmt.Sprintf("%s/workflows/%s/runs/%s/stream", c.BaseURL, workflowID, runID)
	klog.V(6).Infof("打开消息流: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		deliverError(ctx, h, fmt.Errorf("failed to create stream request: %w", err))
		return
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	// 流不设超时，直到终止事件或取消
	client := &http.Client{Transport: c.HTTPClient.Transport}
	resp, err := client.Do(req)
	if err != nil {
		deliverError(ctx, h, fmt.Errorf("stream connection failed: %w", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		deliverError(ctx, h, fmt.Errorf("stream rejected: status=%d", resp.StatusCode))
		return
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			klog.V(6).Infof("消息流已取消: workflowId=%s", workflowID)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var event StreamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			klog.Warningf("忽略无法解析的流事件: %v", err)
			continue
		}

		switch event.Type {
		case EventComplete:
			deliverComplete(ctx, h)
			return
		case EventError:
			deliverError(ctx, h, fmt.Errorf("stream error event: %s", event.Message))
			return
		default:
			if ctx.Err() == nil && h.OnEvent != nil {
				h.OnEvent(event)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		deliverError(ctx, h, fmt.Errorf("stream read failed: %w", err))
		return
	}

	// 服务端正常关闭连接视为完成
	deliverComplete(ctx, h)
}

// 取消后不再触发任何回调：每次投递前都检查 ctx
func deliverComplete(ctx context.Context, h StreamHandlers) {
	if ctx.Err() != nil {
		return
	}
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

func deliverError(ctx context.Context, h StreamHandlers, err error) {
	if ctx.Err() != nil {
		return
	}
	klog.Errorf("消息流错误: %v", err)
	if h.OnError != nil {
		h.OnError(err)
	}
}
