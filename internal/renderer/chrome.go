package renderer

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"invoice-generator/internal/billing"
	u "invoice-generator/internal/utils"
)

//go:embed templates/invoice.html
var invoiceHTML string

var invoiceTemplate = template.Must(template.New("invoice").Parse(invoiceHTML))

// PaperSize is a page size in inches, as PrintToPDF expects.
type PaperSize struct {
	Width  float64
	Height float64
}

var paperSizes = map[string]PaperSize{
	"A4":     {Width: 8.27, Height: 11.69},
	"A5":     {Width: 5.83, Height: 8.27},
	"LETTER": {Width: 8.5, Height: 11},
	"LEGAL":  {Width: 8.5, Height: 14},
}

const chromeMargin = 0.4

// Chrome renders an HTML invoice page in headless Chrome.
type Chrome struct {
	cfg   u.RendererConfig
	paper PaperSize
}

func NewChrome(cfg u.RendererConfig) (*Chrome, error) {
	paper, ok := paperSizes[strings.ToUpper(cfg.Paper)]
	if !ok {
		return nil, fmt.Errorf("paper size %q not supported", cfg.Paper)
	}
	return &Chrome{cfg: cfg, paper: paper}, nil
}

// HTML renders the invoice page that is printed to PDF.
func (r *Chrome) HTML(doc billing.Document) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("invoice template: %w", err)
	}
	return buf.String(), nil
}

// Render starts a fresh Chrome instance for every document.
func (r *Chrome) Render(ctx context.Context, doc billing.Document) ([]byte, error) {
	html, err := r.HTML(doc)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "chromedata-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp profile dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	allocatorOptions := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(tmpDir),
		// No GPU in Lambda or slim containers.
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.cfg.ChromePath != "" {
		allocatorOptions = append(allocatorOptions, chromedp.ExecPath(r.cfg.ChromePath))
	}
	if r.cfg.ChromeNoSandbox {
		allocatorOptions = append(allocatorOptions, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions...)
	defer cancelAlloc()
	chromeCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	chromeCtx, cancelTimeout := context.WithTimeout(chromeCtx, time.Duration(r.cfg.TimeoutSecs)*time.Second)
	defer cancelTimeout()

	return printHTML(chromeCtx, html, r.paper)
}

func printHTML(ctx context.Context, html string, paper PaperSize) ([]byte, error) {
	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frame, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frame.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paper.Width).
				WithPaperHeight(paper.Height).
				WithMarginTop(chromeMargin).
				WithMarginBottom(chromeMargin).
				WithMarginLeft(chromeMargin).
				WithMarginRight(chromeMargin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print: %w", err)
	}
	return pdfBuf, nil
}
