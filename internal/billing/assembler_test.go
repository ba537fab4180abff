package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentinelPDF = []byte("%PDF-sentinel")

func newTestAssembler(index int, r Renderer) *Assembler {
	ds := NewDataSource(
		WithClock(fixedClock(time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC))),
		WithIndexSource(fixedIndex(index)),
	)
	return NewAssembler(ds, r)
}

func TestAssembleSingleItemTotalEqualsAmount(t *testing.T) {
	a := newTestAssembler(0, nil)
	doc := a.Assemble()

	require.Len(t, doc.Items, 1)
	assert.Equal(t, "$ 55", doc.Items[0].Amount)
	assert.Equal(t, doc.Items[0].Amount, doc.Total)
	assert.Equal(t, "John Doe", doc.Customer.Name)
	assert.Equal(t, "Example Corp.", doc.Provider.Name)
	assert.Equal(t, InvoiceDates{IssueDate: "01-05-2024", DueDate: "15-05-2024"}, doc.Dates)
	assert.Equal(t, "1714557600", doc.ID)
	assert.Equal(t, "NO. 1714557600", doc.Number())
}

func TestAssembleSecondItemTotal(t *testing.T) {
	doc := newTestAssembler(1, nil).Assemble()
	assert.Equal(t, "$ 1,999", doc.Total)
	assert.Equal(t, "12345678901234", doc.Customer.BankAccountNumber)
}

func TestGenerateReturnsRendererBytesUnmodified(t *testing.T) {
	var got Document
	r := RendererFunc(func(_ context.Context, doc Document) ([]byte, error) {
		got = doc
		return sentinelPDF, nil
	})

	out, err := newTestAssembler(1, r).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sentinelPDF, out)
	assert.Equal(t, "$ 1,999", got.Total)
	assert.Len(t, got.Items, 1)
}

func TestGeneratePropagatesRenderError(t *testing.T) {
	boom := errors.New("boom")
	r := RendererFunc(func(context.Context, Document) ([]byte, error) {
		return []byte("partial"), boom
	})

	out, err := newTestAssembler(0, r).Generate(context.Background())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateRejectsEmptyOutput(t *testing.T) {
	r := RendererFunc(func(context.Context, Document) ([]byte, error) {
		return nil, nil
	})

	_, err := newTestAssembler(0, r).Generate(context.Background())
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
