// Package export writes generated documents to disk and renders them to PDF
// through headless Chrome.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/applyforge/internal/types"
)

// FileName derives a filesystem-safe name for one document,
// e.g. "resume-acme-corp.html".
func FileName(doc types.GeneratedDocument, jobs []types.JobTarget, ext string) string {
	suffix := doc.JobID
	for _, job := range jobs {
		if job.ID == doc.JobID {
			suffix = job.CompanyName
			break
		}
	}
	return fmt.Sprintf("%s-%s%s", doc.Type, slugify(suffix), ext)
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// WriteDocuments writes each document's HTML into dir. Returns the written
// paths in document order.
func WriteDocuments(dir string, documents []types.GeneratedDocument, jobs []types.JobTarget) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var paths []string
	for _, doc := range documents {
		path := filepath.Join(dir, FileName(doc, jobs, ".html"))
		if err := os.WriteFile(path, []byte(doc.HTMLContent), 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// PDFRenderer renders HTML documents to PDF bytes with headless Chrome.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// RenderHTMLToPDF prints one HTML document to letter-size PDF.
func (r *PDFRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, 60*time.Second)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "applyforge-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "document.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// US letter: 8.5in x 11in.
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return pdfBuf, nil
}

// ExportPDFs renders every document to PDF files in dir. Documents that fail
// to render are skipped with a warning so one bad document does not lose the
// rest of the batch.
func ExportPDFs(ctx context.Context, dir string, documents []types.GeneratedDocument, jobs []types.JobTarget) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	renderer := NewPDFRenderer()
	var paths []string
	for _, doc := range documents {
		pdf, err := renderer.RenderHTMLToPDF(ctx, doc.HTMLContent)
		if err != nil {
			fmt.Printf("Warning: Failed to render %s for %s: %v\n", doc.Type, doc.JobID, err)
			continue
		}
		path := filepath.Join(dir, FileName(doc, jobs, ".pdf"))
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
