package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/billing"
	"invoice-generator/internal/renderer"
	u "invoice-generator/internal/utils"
)

type stubGenerator struct {
	out []byte
	err error
}

func (s stubGenerator) Generate(context.Context) ([]byte, error) {
	return s.out, s.err
}

var sentinel = []byte("%PDF-1.3 sentinel")

func TestProcess_WrapsPDFInProxyResponse(t *testing.T) {
	h := NewInvoiceHandler(stubGenerator{out: sentinel}, quietLogger(t))

	resp, err := h.Process(context.Background(), json.RawMessage(`{"httpMethod":"GET"}`))
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, map[string]string{"Content-Type": "application/pdf"}, resp.Headers)
	assert.True(t, resp.IsBase64Encoded)

	body, err := base64.StdEncoding.DecodeString(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, sentinel, body)
}

func TestProcess_EventDoesNotChangeResponse(t *testing.T) {
	var buf bytes.Buffer
	h := NewInvoiceHandler(stubGenerator{out: sentinel}, u.NewLoggerWithWriter(&buf, "DEBUG"))

	baseline, err := h.Process(context.Background(), nil)
	require.NoError(t, err)

	events := []string{
		`{}`,
		`null`,
		`[]`,
		`"plain string"`,
		`{"queryStringParameters":{"customer":"someone-else"},"body":"{\"item\":99}"}`,
		"{\n  \"nested\": {\"deep\": [1, 2, {\"x\": true}]}\n}",
	}
	for _, ev := range events {
		resp, err := h.Process(context.Background(), json.RawMessage(ev))
		require.NoError(t, err, ev)
		assert.Equal(t, baseline, resp, ev)
	}
}

func TestProcess_LogsEventAtDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewInvoiceHandler(stubGenerator{out: sentinel}, u.NewLoggerWithWriter(&buf, "DEBUG"))

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-123"})
	_, err := h.Process(ctx, json.RawMessage(`{"path":"/invoice"}`))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"event":{"path":"/invoice"}`)
	assert.Contains(t, out, `"request_id":"req-123"`)
}

func TestProcess_DebugSuppressedAtWarn(t *testing.T) {
	var buf bytes.Buffer
	h := NewInvoiceHandler(stubGenerator{out: sentinel}, u.NewLoggerWithWriter(&buf, "TRACE"))

	_, err := h.Process(context.Background(), json.RawMessage(`{"secret":"x"}`))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "secret")
}

func TestProcess_PropagatesGenerationError(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("renderer exploded")
	h := NewInvoiceHandler(stubGenerator{err: boom}, u.NewLoggerWithWriter(&buf, "WARN"))

	resp, err := h.Process(context.Background(), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, resp.StatusCode)
	assert.Contains(t, buf.String(), "renderer exploded")
}

func TestProcess_NilLoggerIsAllowed(t *testing.T) {
	h := NewInvoiceHandler(stubGenerator{out: sentinel}, nil)
	_, err := h.Process(context.Background(), nil)
	assert.NoError(t, err)
}

func TestProcess_EndToEndWithGofpdf(t *testing.T) {
	ds := billing.NewDataSource(billing.WithClock(func() time.Time {
		return time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	}))
	r, err := renderer.New(u.DefaultConfig().Renderer)
	require.NoError(t, err)
	h := NewInvoiceHandler(billing.NewAssembler(ds, r), quietLogger(t))

	resp, err := h.Process(context.Background(), json.RawMessage(`{"resource":"/invoice"}`))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsBase64Encoded)

	body, err := base64.StdEncoding.DecodeString(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF-"))
}

// quietLogger keeps test output quiet.
func quietLogger(t *testing.T) *u.Logger {
	t.Helper()
	return u.NopLogger()
}
