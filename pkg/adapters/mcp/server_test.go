package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/enigma/pkg/adapters/memory"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/observability"
	"github.com/aretw0/enigma/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(opts ...Option) *Server {
	return NewServer(session.NewManager(config.Default(), memory.NewStore()), opts...)
}

func TestHandleEncode(t *testing.T) {
	metrics := observability.NewMetrics()
	s := newTestServer(WithMetrics(metrics))
	ctx := context.Background()

	resp, err := s.handleEncode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"text": "Hello World"})
	require.NoError(t, err)
	assert.Equal(t, "MFNDZ AAFZV", resp.Output)
	assert.Equal(t, []int{10, 0, 0}, resp.Positions)
	assert.Equal(t, "AAK", resp.Window)

	// Stateless: the same call gives the same answer.
	again, err := s.handleEncode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"text": "Hello World"})
	require.NoError(t, err)
	assert.Equal(t, resp.Output, again.Output)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Messages.WithLabelValues("mcp")))
	assert.Equal(t, 20.0, testutil.ToFloat64(metrics.LettersEncoded))
}

func TestHandleEncode_Positions(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	resp, err := s.handleEncode(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"text":      "THE QUICK BROWN FOX",
		"positions": "Y,D,V",
	})
	require.NoError(t, err)
	assert.Equal(t, "KZI DLQHR JLERD XUO", resp.Output)

	_, err = s.handleEncode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"text": "A", "positions": "1,2"})
	assert.Error(t, err)
}

func TestHandleSessionEncode(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	first, err := s.handleSessionEncode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "agent", "text": "HELLO"})
	require.NoError(t, err)
	second, err := s.handleSessionEncode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "agent", "text": " WORLD"})
	require.NoError(t, err)

	assert.Equal(t, "MFNDZ AAFZV", first.Output+second.Output)
	assert.Equal(t, "agent", second.SessionID)

	_, err = s.handleSessionEncode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"text": "A"})
	assert.Error(t, err)
}

func TestHandleTrace(t *testing.T) {
	s := newTestServer()

	resp, err := s.handleTrace(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"letter": "h"})
	require.NoError(t, err)
	assert.Equal(t, 'M', resp.Trace.Output)
	assert.Equal(t, "H > H > U > P > E > Q > Y > V > M > M", resp.Path)
	assert.True(t, strings.HasPrefix(resp.Mermaid, "graph LR"))

	_, err = s.handleTrace(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"letter": "42"})
	assert.Error(t, err)
}
