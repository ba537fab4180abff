// Package renderer turns billing documents into PDF bytes.
package renderer

import (
	"errors"
	"fmt"
	"strings"

	"invoice-generator/internal/billing"
	u "invoice-generator/internal/utils"
)

const (
	EngineGofpdf = "gofpdf"
	EngineChrome = "chrome"
)

// ErrUnknownEngine signals a renderer.engine value that is not supported.
var ErrUnknownEngine = errors.New("unknown renderer engine")

// New returns the renderer selected by cfg.Engine.
func New(cfg u.RendererConfig) (billing.Renderer, error) {
	switch strings.ToLower(cfg.Engine) {
	case EngineGofpdf, "":
		return NewPDF(cfg), nil
	case EngineChrome:
		r, err := NewChrome(cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
	}
}
