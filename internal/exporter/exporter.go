// Package exporter 文档与会话转录的导出管线：
// 打印 HTML 组装、PDF 栅格化、转录 markdown 落盘与导出记录。
package exporter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/panjf2000/ants/v2"
	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/config"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/eventbus"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/repository"
)

const (
	KindPDF        = "pdf"
	KindTranscript = "transcript"

	StatusDone   = "done"
	StatusFailed = "failed"
)

var (
	ErrNoContent       = errors.New("no document content to export")
	ErrNothingToExport = errors.New("no conversation to export yet")
)

// 文件名里除字母数字外统一替换为下划线
var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// PageOptions 打印页参数（Letter 纵向）
type PageOptions struct {
	MarginInches float64
	Scale        float64
}

// Rasterizer 把打印 HTML 栅格化为 PDF 字节流
type Rasterizer interface {
	RenderPDF(ctx context.Context, html string, opts PageOptions) ([]byte, error)
}

// Exporter 导出器。PDF 栅格化开销大，用协程池限制并发。
type Exporter struct {
	rasterizer Rasterizer
	records    repository.ExportRecordRepository
	bus        *eventbus.ViewerEventBus
	outDir     string
	pageWidth  int
	padding    int
	opts       PageOptions
	pool       *ants.Pool
	now        func() time.Time
}

func New(cfg *config.Config, rasterizer Rasterizer, records repository.ExportRecordRepository, bus *eventbus.ViewerEventBus) (*Exporter, error) {
	pool, err := ants.NewPool(cfg.Export.MaxWorkers,
		ants.WithNonblocking(false),
		ants.WithMaxBlockingTasks(100),
	)
	if err != nil {
		klog.Errorf("ants pool initialization failed: %v", err)
		return nil, err
	}

	return &Exporter{
		rasterizer: rasterizer,
		records:    records,
		bus:        bus,
		outDir:     cfg.Data.Dir,
		pageWidth:  cfg.Export.PageWidthPx,
		padding:    cfg.Export.PaddingPx,
		opts: PageOptions{
			MarginInches: cfg.Export.MarginInches,
			Scale:        cfg.Export.Scale,
		},
		pool: pool,
		now:  time.Now,
	}, nil
}

// Close 释放协程池
func (e *Exporter) Close() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// submitAndWait 把任务提交进池并等待完成，保证并发上限
func (e *Exporter) submitAndWait(job func()) error {
	done := make(chan struct{})
	if err := e.pool.Submit(func() {
		defer close(done)
		job()
	}); err != nil {
		return err
	}
	<-done
	return nil
}

// writeFile 落盘到数据目录，返回完整路径
func (e *Exporter) writeFile(filename string, data []byte) (string, error) {
	path := filepath.Join(e.outDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// record 写导出记录并广播结果事件。记录失败只告警，不影响导出本身。
func (e *Exporter) record(doc *model.Document, kind, filename string, exportErr error) {
	rec := &model.ExportRecord{
		DocumentID: doc.ID,
		Kind:       kind,
		Filename:   filename,
		Status:     StatusDone,
		CreatedAt:  e.now(),
	}
	if exportErr != nil {
		rec.Status = StatusFailed
		rec.ErrorMsg = exportErr.Error()
	}
	if e.records != nil {
		if err := e.records.Create(rec); err != nil {
			klog.Warningf("导出记录写入失败: doc=%s, err=%v", doc.UID, err)
		}
	}

	if e.bus == nil {
		return
	}
	event := eventbus.ViewerEvent{
		Type:      eventbus.ViewerEventExportFinished,
		DocUID:    doc.UID,
		Title:     doc.Title,
		Detail:    filename,
		Succeeded: exportErr == nil,
	}
	if exportErr != nil {
		event.Detail = exportErr.Error()
	}
	if err := e.bus.Publish(context.Background(), eventbus.ViewerEventExportFinished, event); err != nil {
		klog.Warningf("事件发布失败: type=%s, err=%v", eventbus.ViewerEventExportFinished, err)
	}
}

func sanitizeFilename(title string) string {
	return filenameSanitizer.ReplaceAllString(title, "_")
}
