package handlers

import (
	"invoice-generator/internal/billing"
	"invoice-generator/internal/renderer"
	u "invoice-generator/internal/utils"
)

// NewFromConfig wires the default data source and the configured renderer
// into a ready handler.
func NewFromConfig(cfg u.Config, log *u.Logger) (*InvoiceHandler, error) {
	r, err := renderer.New(cfg.Renderer)
	if err != nil {
		return nil, err
	}
	assembler := billing.NewAssembler(billing.NewDataSource(), r)
	return NewInvoiceHandler(assembler, log), nil
}
