package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/enigma/pkg/adapters/memory"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/observability"
	"github.com/aretw0/enigma/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	mgr := session.NewManager(config.Default(), memory.NewStore())
	return NewHandler(mgr, opts...)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetInfo(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "enigma-http", info["app"])
	assert.Equal(t, "default", info["machine"])
	assert.Equal(t, 3.0, info["rotors"])
}

func TestGetConfig(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/config", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg config.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Len(t, cfg.Rotors, 3)
	assert.Equal(t, []string{"AB", "CD"}, cfg.Plugboard)
}

func TestEncode_Stateless(t *testing.T) {
	h := newTestHandler(t)

	// Two identical requests give identical output: nothing is shared.
	for i := 0; i < 2; i++ {
		w := do(t, h, "POST", "/encode", EncodeRequest{Text: "Hello World"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp EncodeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "MFNDZ AAFZV", resp.Output)
		assert.Equal(t, []int{10, 0, 0}, resp.Positions)
		assert.Equal(t, "AAK", resp.Window)
	}
}

func TestEncode_Positions(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/encode", EncodeRequest{Text: "THE QUICK BROWN FOX", Positions: []int{24, 3, 21}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp EncodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "KZI DLQHR JLERD XUO", resp.Output)

	w = do(t, h, "POST", "/encode", EncodeRequest{Text: "A", Positions: []int{1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/encode", EncodeRequest{Text: "A", Positions: []int{0, 0, 26}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEncode_BadRequest(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/encode", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/encode", EncodeRequest{Text: "ABC\xff"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessions_Lifecycle(t *testing.T) {
	h := newTestHandler(t)

	// Create
	w := do(t, h, "POST", "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, []int{0, 0, 0}, created.Positions)
	id := created.SessionID

	// Encode in two chunks; the second continues where the first stopped.
	w = do(t, h, "POST", "/sessions/"+id+"/encode", EncodeRequest{Text: "HELLO"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var first EncodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "MFNDZ", first.Output)

	w = do(t, h, "POST", "/sessions/"+id+"/encode", EncodeRequest{Text: " WORLD"})
	require.Equal(t, http.StatusOK, w.Code)
	var second EncodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, " AAFZV", second.Output)
	assert.Equal(t, []int{10, 0, 0}, second.Positions)

	// Get
	w = do(t, h, "GET", "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 10, got.Encoded)
	assert.Equal(t, "AAK", got.Window)

	// List
	w = do(t, h, "GET", "/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)

	// Reset
	w = do(t, h, "POST", "/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"positions":[0,0,0]`)

	// Delete
	w = do(t, h, "DELETE", "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t, WithMetrics(observability.NewMetrics()))

	w := do(t, h, "POST", "/encode", EncodeRequest{Text: "ABC"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "enigma_letters_encoded_total 3")
	assert.Contains(t, body, `enigma_messages_total{adapter="http"} 1`)
	assert.Contains(t, body, `path="/encode"`)
}

func TestCORS_Preflight(t *testing.T) {
	w := do(t, newTestHandler(t), "OPTIONS", "/encode", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_Session(t *testing.T) {
	h := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events?session_id=sess-1", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	w := do(t, h, "POST", "/sessions/sess-1/encode", EncodeRequest{Text: "HELLO"})
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"session_id":"sess-1"`)
	assert.Contains(t, output, `"positions":[5,0,0]`)
}

func TestSubscribeEvents_RequiresSession(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/events", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
