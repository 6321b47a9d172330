package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/cmcplan/internal/config"
	"github.com/alexanderramin/cmcplan/internal/logging"
	"github.com/alexanderramin/cmcplan/internal/service"
	"github.com/alexanderramin/cmcplan/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	route, method string
	code          int
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) IncrementHTTPRequest(route, method string, code int) {
	f.requests = append(f.requests, recordedRequest{route, method, code})
}

func TestNewRouter_Routes(t *testing.T) {
	router := NewRouter(NewHandler(nil), http.NotFoundHandler())
	chiRouter, ok := router.(*chi.Mux)
	require.True(t, ok)

	var routes []string
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(routes)

	assert.Equal(t, []string{
		"GET /api/v1/checklist",
		"GET /api/v1/modalities",
		"GET /api/v1/stages",
		"GET /health/live",
		"GET /metrics",
		"POST /api/v1/export/{format}",
	}, routes)
}

func TestNewRouter_WithoutMetrics(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	h := NewRouter(NewHandler(nil), nil,
		middleware.RequestID,
		RequestLogger(logging.New("info", "json", &buf), rec),
	)

	resp := do(t, h, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	require.Len(t, rec.requests, 1)
	assert.Equal(t, recordedRequest{"/health/live", http.MethodGet, http.StatusOK}, rec.requests[0])

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, "/health/live", entry["route"])
	assert.Equal(t, float64(200), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestRequestLogger_UsesRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	full := newTestRouter(t)
	h := RequestLogger(logging.Discard(), rec)(full)

	resp := do(t, h, http.MethodPost, "/api/v1/export/pdf", bytes.NewBufferString("{}"))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Len(t, rec.requests, 1)
	assert.Equal(t, http.StatusBadRequest, rec.requests[0].code)
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := Recovery(logging.New("info", "json", &buf))(panicky)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Internal Server Error", got.Title)
	assert.Empty(t, got.Detail)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

// logEntries decodes one JSON log record per line.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	dec := json.NewDecoder(buf)
	for {
		var entry map[string]any
		err := dec.Decode(&entry)
		if err == io.EOF {
			return entries
		}
		require.NoError(t, err)
		entries = append(entries, entry)
	}
}

func entryWithMsg(t *testing.T, entries []map[string]any, msg string) map[string]any {
	t.Helper()
	for _, e := range entries {
		if e["msg"] == msg {
			return e
		}
	}
	t.Fatalf("no %q record in %v", msg, entries)
	return nil
}

func TestMiddleware_UseCaseLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	store, err := template.DefaultStore()
	require.NoError(t, err)
	svc := service.NewChecklistService(store, func() time.Time { return testTime }, service.NewLogUseCaseObserver(logger))
	h := NewRouter(NewHandler(svc), nil, Middleware(logger, &fakeRecorder{})...)

	resp := do(t, h, http.MethodGet, "/api/v1/checklist?modality=mab&stage=phase-1", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	entries := logEntries(t, &buf)
	useCase := entryWithMsg(t, entries, "service_use_case")
	request := entryWithMsg(t, entries, "http_request")

	assert.NotEmpty(t, request["request_id"])
	assert.Equal(t, request["request_id"], useCase["request_id"])
	assert.Equal(t, "checklist", useCase["use_case"])
}

func TestMiddleware_PanicIsLoggedAndCounted(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := chi.Chain(Middleware(logging.New("info", "json", &buf), rec)...).Handler(panicky)

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/explode", nil))
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	require.Len(t, rec.requests, 1)
	assert.Equal(t, http.StatusInternalServerError, rec.requests[0].code)

	entries := logEntries(t, &buf)
	panicked := entryWithMsg(t, entries, "panic recovered")
	request := entryWithMsg(t, entries, "http_request")
	assert.Equal(t, float64(500), request["status"])
	assert.NotEmpty(t, request["request_id"])
	assert.Equal(t, request["request_id"], panicked["request_id"])
}

func TestServer_Addr(t *testing.T) {
	s := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 9090}, http.NotFoundHandler(), nil)
	assert.Equal(t, "127.0.0.1:9090", s.Addr())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	cfg := config.Default().Server
	s := NewServer(cfg, newTestRouter(t), logging.Discard())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health/live")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}
