package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"jobcontext/internal/logging"
)

// PDFRenderer prints HTML to PDF with headless Chrome. CHROME_PATH
// overrides the browser binary when Chrome is not on the default path.
type PDFRenderer struct {
	logger *logging.AppLogger
}

func NewPDFRenderer(logger *logging.AppLogger) *PDFRenderer {
	return &PDFRenderer{logger: logger}
}

// RenderHTMLToPDF renders an HTML document string to A4 PDF bytes.
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

	// Chrome needs a file:// URL for local font and print rendering
	tmpDir, err := os.MkdirTemp("", "jobcontext-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write html: %w", err)
	}

	start := time.Now()
	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome pdf print failed: %w", err)
	}

	r.logger.LogPerformance("pdf render", start)
	return pdfBuf, nil
}

// WritePDF renders HTML and writes the PDF into outputDir. The .pdf
// extension is added when missing.
func (r *PDFRenderer) WritePDF(ctx context.Context, html, outputDir, filename string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	pdf, err := r.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, filepath.Base(filename))
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	r.logger.Info("PDF written", "path", path, "bytes", len(pdf))
	return path, nil
}
