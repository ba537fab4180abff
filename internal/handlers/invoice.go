package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	u "invoice-generator/internal/utils"
)

// ContentTypePDF is the media type API Gateway needs to serve the body as binary.
const ContentTypePDF = "application/pdf"

// Generator produces one rendered invoice.
type Generator interface {
	Generate(ctx context.Context) ([]byte, error)
}

// InvoiceHandler is the function entry point.
type InvoiceHandler struct {
	generator Generator
	log       *u.Logger
}

func NewInvoiceHandler(generator Generator, log *u.Logger) *InvoiceHandler {
	if log == nil {
		log = u.NopLogger()
	}
	return &InvoiceHandler{generator: generator, log: log}
}

// Process logs the event, renders an invoice and wraps it in a proxy
// integration response. The event does not influence the invoice. Generation
// errors are returned as-is so the platform reports a failed invocation.
func (h *InvoiceHandler) Process(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	fields := []any{"event", event}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields = append(fields, "request_id", lc.AwsRequestID)
	}
	h.log.Debug("Inbound event", fields...)

	pdf, err := h.generator.Generate(ctx)
	if err != nil {
		h.log.Error("Invoice generation failed", "error", err)
		return events.APIGatewayProxyResponse{}, err
	}
	h.log.Info("Invoice generated", "bytes", len(pdf))

	// Binary bodies must be base64 encoded for API Gateway.
	return events.APIGatewayProxyResponse{
		StatusCode:      http.StatusOK,
		Headers:         map[string]string{"Content-Type": ContentTypePDF},
		Body:            base64.StdEncoding.EncodeToString(pdf),
		IsBase64Encoded: true,
	}, nil
}
