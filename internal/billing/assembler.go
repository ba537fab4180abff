package billing

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when a renderer succeeds but produces no bytes.
var ErrEmptyDocument = errors.New("renderer returned an empty document")

// Renderer turns a Document into a printable byte stream.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(ctx context.Context, doc Document) ([]byte, error)

func (f RendererFunc) Render(ctx context.Context, doc Document) ([]byte, error) {
	return f(ctx, doc)
}

// Source supplies the data an invoice is built from.
type Source interface {
	ProviderDetails() Provider
	CustomerDetails() Customer
	OrderItem() LineItem
	InvoiceDate() InvoiceDates
	InvoiceID() string
}

// Assembler builds one single-item invoice per call and renders it.
type Assembler struct {
	source   Source
	renderer Renderer
}

func NewAssembler(source Source, renderer Renderer) *Assembler {
	return &Assembler{source: source, renderer: renderer}
}

// Assemble draws one customer and one item. The total is the item amount.
func (a *Assembler) Assemble() Document {
	item := a.source.OrderItem()
	return Document{
		ID:       a.source.InvoiceID(),
		Provider: a.source.ProviderDetails(),
		Customer: a.source.CustomerDetails(),
		Dates:    a.source.InvoiceDate(),
		Items:    []LineItem{item},
		Total:    item.Amount,
	}
}

// Generate assembles a document and returns the rendered bytes unmodified.
func (a *Assembler) Generate(ctx context.Context) ([]byte, error) {
	doc := a.Assemble()
	out, err := a.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", doc.ID, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("render invoice %s: %w", doc.ID, ErrEmptyDocument)
	}
	return out, nil
}
