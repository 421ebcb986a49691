// Package markdown 将研究文档的 markdown 渲染为带锚点的结构化文档。
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/outline"
)

// Document 渲染结果：大纲 + HTML 内容。
// 大纲中的每条记录在 HTML 中都有一个携带相同 id 的标题元素。
type Document struct {
	Title   string          `json:"title"`
	Outline []outline.Entry `json:"outline"`
	HTML    string          `json:"html"`
	Failed  bool            `json:"failed"` // 渲染失败时为 true，HTML 为错误占位内容
}

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			// 标题行已被改写为显式 HTML 元素，需要原样透传
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
	}
}

// Render 渲染 markdown。标题行先改写为带 id 的显式标签，
// 其余内容交给底层转换器。转换器不可用或 panic 时返回错误占位文档，
// 查看器仍可打开。
func (r *Renderer) Render(title, markup string) *Document {
	entries := outline.Extract(markup)

	doc := &Document{
		Title:   title,
		Outline: entries,
	}

	htmlContent, err := r.renderHTML(markup, entries)
	if err != nil {
		klog.Errorf("文档渲染失败: title=%s, err=%v", title, err)
		doc.HTML = fmt.Sprintf(`<div class="error">Failed to render document: %s</div>`, html.EscapeString(err.Error()))
		doc.Failed = true
		return doc
	}

	doc.HTML = htmlContent
	return doc
}

func (r *Renderer) renderHTML(markup string, entries []outline.Entry) (result string, err error) {
	if r == nil || r.md == nil {
		return "", fmt.Errorf("markdown transform not available")
	}

	// 底层转换器的 panic 不允许越过组件边界
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("markdown transform panic: %v", rec)
		}
	}()

	processed := rewriteHeadings(markup, entries)

	var buf bytes.Buffer
	if convErr := r.md.Convert([]byte(processed), &buf); convErr != nil {
		return "", fmt.Errorf("markdown transform failed: %w", convErr)
	}
	return buf.String(), nil
}

// rewriteHeadings 把每个标题行改写为带 id 属性的显式标签。
// 锚点 id 按文档顺序取自大纲，与 outline.Extract 的碰撞后缀保持一致。
func rewriteHeadings(markup string, entries []outline.Entry) string {
	lines := strings.Split(markup, "\n")
	next := 0

	for i, line := range lines {
		if next >= len(entries) {
			break
		}
		if !isHeadingLine(line) {
			continue
		}
		e := entries[next]
		next++
		lines[i] = fmt.Sprintf(`<h%d id="%s">%s</h%d>`, e.Level, e.AnchorID, html.EscapeString(e.Text), e.Level)
	}

	return strings.Join(lines, "\n")
}

func isHeadingLine(line string) bool {
	hashes := 0
	for hashes < len(line) && line[hashes] == '#' {
		hashes++
	}
	if hashes < 1 || hashes > 3 || hashes >= len(line) {
		return false
	}
	if line[hashes] != ' ' && line[hashes] != '\t' {
		return false
	}
	return strings.TrimSpace(line[hashes:]) != ""
}
