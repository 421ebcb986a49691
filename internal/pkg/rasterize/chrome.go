// Package rasterize 基于无头 Chrome 的 HTML 到 PDF 栅格化
package rasterize

import (
	"context"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/exporter"
)

// Letter 纵向纸面尺寸（英寸）
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11.0
)

// ChromeRasterizer 每次渲染启动独立的浏览器上下文，渲染完即回收
type ChromeRasterizer struct {
	allocOpts []chromedp.ExecAllocatorOption
}

func NewChromeRasterizer() *ChromeRasterizer {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.Flag("disable-gpu", true),
	)
	return &ChromeRasterizer{allocOpts: opts}
}

// RenderPDF 注入打印 HTML 并执行 PrintToPDF
func (r *ChromeRasterizer) RenderPDF(ctx context.Context, html string, opts exporter.PageOptions) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocOpts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(opts.MarginInches).
				WithMarginBottom(opts.MarginInches).
				WithMarginLeft(opts.MarginInches).
				WithMarginRight(opts.MarginInches).
				WithScale(opts.Scale).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		klog.Errorf("PDF 渲染失败: %v", err)
		return nil, err
	}
	return pdf, nil
}
