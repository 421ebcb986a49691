package exporter

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
)

// DocumentFilename 文档导出文件名：净化后的标题 + .pdf
func DocumentFilename(title string) string {
	return sanitizeFilename(title) + ".pdf"
}

// BuildPrintHTML 把渲染好的正文 HTML 包进打印容器。
// 容器宽度与内边距来自配置，样式表随页面内联。
func (e *Exporter) BuildPrintHTML(bodyHTML string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>")
	b.WriteString(printCSS)
	b.WriteString("</style>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "<div class=\"print-root\" style=\"width:%dpx;padding:%dpx\">\n", e.pageWidth, e.padding)
	b.WriteString(bodyHTML)
	b.WriteString("\n</div>\n</body>\n</html>\n")
	return b.String()
}

// ExportDocument 把文档导出为分页 PDF 并落盘。
// 空正文直接拒绝。栅格化经协程池限流。
func (e *Exporter) ExportDocument(ctx context.Context, doc *model.Document, bodyHTML string) (string, error) {
	if strings.TrimSpace(bodyHTML) == "" {
		return "", ErrNoContent
	}

	filename := DocumentFilename(doc.Title)
	printHTML := e.BuildPrintHTML(bodyHTML)

	var (
		pdf       []byte
		renderErr error
	)
	if err := e.submitAndWait(func() {
		pdf, renderErr = e.rasterizer.RenderPDF(ctx, printHTML, e.opts)
	}); err != nil {
		e.record(doc, KindPDF, filename, err)
		return "", err
	}
	if renderErr != nil {
		klog.Errorf("PDF 栅格化失败: doc=%s, err=%v", doc.UID, renderErr)
		e.record(doc, KindPDF, filename, renderErr)
		return "", renderErr
	}

	path, err := e.writeFile(filename, pdf)
	if err != nil {
		e.record(doc, KindPDF, filename, err)
		return "", err
	}

	klog.V(6).Infof("文档导出完成: doc=%s, file=%s", doc.UID, filename)
	e.record(doc, KindPDF, filename, nil)
	return path, nil
}
