package exporter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/config"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/model"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/session"
)

type fakeRasterizer struct {
	html string
	opts PageOptions
	out  []byte
	err  error
}

func (f *fakeRasterizer) RenderPDF(ctx context.Context, html string, opts PageOptions) ([]byte, error) {
	f.html = html
	f.opts = opts
	return f.out, f.err
}

type fakeRecordRepo struct {
	records []*model.ExportRecord
	err     error
}

func (f *fakeRecordRepo) Create(rec *model.ExportRecord) error {
	f.records = append(f.records, rec)
	return f.err
}

func (f *fakeRecordRepo) GetByDocument(docID uint) ([]model.ExportRecord, error) {
	var out []model.ExportRecord
	for _, r := range f.records {
		if r.DocumentID == docID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func newTestExporter(t *testing.T, rasterizer Rasterizer, records *fakeRecordRepo) *Exporter {
	t.Helper()
	cfg := &config.Config{
		Export: config.ExportConfig{
			PageWidthPx:  800,
			PaddingPx:    60,
			MarginInches: 0.75,
			Scale:        2,
			MaxWorkers:   2,
		},
		Data: config.DataConfig{Dir: t.TempDir()},
	}
	e, err := New(cfg, rasterizer, records, nil)
	if err != nil {
		t.Fatalf("failed to create exporter: %v", err)
	}
	t.Cleanup(e.Close)
	e.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestExportDocumentWritesPDF(t *testing.T) {
	rasterizer := &fakeRasterizer{out: []byte("%PDF-1.7 fake")}
	records := &fakeRecordRepo{}
	e := newTestExporter(t, rasterizer, records)

	doc := &model.Document{ID: 1, UID: "doc-1", Title: "NVDA: Q3 Deep Dive"}
	path, err := e.ExportDocument(context.Background(), doc, "<h1 id=\"overview\">Overview</h1><p>Text</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := filepath.Base(path); got != "NVDA__Q3_Deep_Dive.pdf" {
		t.Fatalf("filename not sanitized: %s", got)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Fatalf("unexpected file content: %q", data)
	}

	if len(records.records) != 1 || records.records[0].Status != StatusDone || records.records[0].Kind != KindPDF {
		t.Fatalf("unexpected export record: %+v", records.records)
	}
	if rasterizer.opts.MarginInches != 0.75 || rasterizer.opts.Scale != 2 {
		t.Fatalf("page options not forwarded: %+v", rasterizer.opts)
	}
}

func TestExportDocumentPrintHTML(t *testing.T) {
	rasterizer := &fakeRasterizer{out: []byte("pdf")}
	e := newTestExporter(t, rasterizer, &fakeRecordRepo{})

	doc := &model.Document{ID: 1, UID: "doc-1", Title: "NVDA"}
	if _, err := e.ExportDocument(context.Background(), doc, "<table><tr><td>x</td></tr></table>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := rasterizer.html
	for _, want := range []string{
		`width:800px;padding:60px`,
		`page-break-inside: avoid`,
		`border-bottom: 3px solid #336F51`,
		`<table><tr><td>x</td></tr></table>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("print html missing %q", want)
		}
	}
}

func TestExportDocumentRejectsEmptyBody(t *testing.T) {
	records := &fakeRecordRepo{}
	e := newTestExporter(t, &fakeRasterizer{}, records)

	doc := &model.Document{ID: 1, UID: "doc-1", Title: "NVDA"}
	if _, err := e.ExportDocument(context.Background(), doc, "   \n"); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if len(records.records) != 0 {
		t.Fatalf("rejected export must not leave a record")
	}
}

func TestExportDocumentRasterizeFailure(t *testing.T) {
	rasterizer := &fakeRasterizer{err: errors.New("chrome crashed")}
	records := &fakeRecordRepo{}
	e := newTestExporter(t, rasterizer, records)

	doc := &model.Document{ID: 1, UID: "doc-1", Title: "NVDA"}
	if _, err := e.ExportDocument(context.Background(), doc, "<p>x</p>"); err == nil {
		t.Fatalf("expected rasterization error")
	}
	if len(records.records) != 1 || records.records[0].Status != StatusFailed {
		t.Fatalf("expected failed record, got %+v", records.records)
	}
	if records.records[0].ErrorMsg != "chrome crashed" {
		t.Fatalf("expected error message in record: %+v", records.records[0])
	}
}

func TestBuildTranscriptFormat(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	messages := []session.Message{
		{Role: session.RoleUser, Content: "What are the risks?"},
		{Role: session.RoleAssistant, Content: "Competition and supply."},
	}

	got := BuildTranscript("NVDA Deep Dive", messages, at)
	want := "# Chat with NVDA Deep Dive\n\n" +
		"Date: August 30, 2026\n\n" +
		"---\n\n" +
		"**You**: What are the risks?\n\n" +
		"**Assistant**: Competition and supply.\n\n"
	if got != want {
		t.Fatalf("transcript mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestExportTranscriptWritesFile(t *testing.T) {
	records := &fakeRecordRepo{}
	e := newTestExporter(t, &fakeRasterizer{}, records)

	doc := &model.Document{ID: 2, UID: "doc-2", Title: "NVDA Deep Dive"}
	messages := []session.Message{
		{Role: session.RoleUser, Content: "q"},
		{Role: session.RoleAssistant, Content: "a"},
	}

	path, err := e.ExportTranscript(doc, messages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "chat_NVDA_Deep_Dive_") || !strings.HasSuffix(name, ".md") {
		t.Fatalf("unexpected transcript filename: %s", name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if !strings.Contains(string(data), "**You**: q") {
		t.Fatalf("transcript content missing: %q", data)
	}
	if len(records.records) != 1 || records.records[0].Kind != KindTranscript {
		t.Fatalf("unexpected record: %+v", records.records)
	}
}

func TestExportTranscriptRejectsEmpty(t *testing.T) {
	e := newTestExporter(t, &fakeRasterizer{}, &fakeRecordRepo{})
	doc := &model.Document{ID: 3, UID: "doc-3", Title: "NVDA"}

	if _, err := e.ExportTranscript(doc, nil); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}
