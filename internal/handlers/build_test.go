package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/renderer"
	u "invoice-generator/internal/utils"
)

func TestNewFromConfig(t *testing.T) {
	h, err := NewFromConfig(u.DefaultConfig(), u.NopLogger())
	require.NoError(t, err)

	resp, err := h.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Body)
}

func TestNewFromConfig_UnknownEngine(t *testing.T) {
	cfg := u.DefaultConfig()
	cfg.Renderer.Engine = "typewriter"

	h, err := NewFromConfig(cfg, u.NopLogger())
	assert.ErrorIs(t, err, renderer.ErrUnknownEngine)
	assert.Nil(t, h)
}
