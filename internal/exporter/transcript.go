package exporter

import (
	"fmt"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/session"
)

// TranscriptFilename 转录文件名：chat_<净化标题>_<毫秒时间戳>.md
func TranscriptFilename(title string, at time.Time) string {
	return fmt.Sprintf("chat_%s_%d.md", sanitizeFilename(title), at.UnixMilli())
}

// BuildTranscript 把会话消息拼成 markdown 转录
func BuildTranscript(title string, messages []session.Message, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Chat with %s\n\n", title)
	fmt.Fprintf(&b, "Date: %s\n\n", at.Format("January 2, 2006"))
	b.WriteString("---\n\n")

	for _, msg := range messages {
		role := "**Assistant**"
		if msg.Role == session.RoleUser {
			role = "**You**"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", role, msg.Content)
	}
	return b.String()
}

// ExportTranscript 把当前会话转录落盘为 markdown。
// 没有任何消息时拒绝导出。
func (e *Exporter) ExportTranscript(doc *model.Document, messages []session.Message) (string, error) {
	if len(messages) == 0 {
		return "", ErrNothingToExport
	}

	now := e.now()
	filename := TranscriptFilename(doc.Title, now)
	content := BuildTranscript(doc.Title, messages, now)

	path, err := e.writeFile(filename, []byte(content))
	if err != nil {
		e.record(doc, KindTranscript, filename, err)
		return "", err
	}

	klog.V(6).Infof("转录导出完成: doc=%s, file=%s", doc.UID, filename)
	e.record(doc, KindTranscript, filename, nil)
	return path, nil
}
