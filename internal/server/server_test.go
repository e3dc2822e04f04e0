package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/state-scatter/internal/chart"
	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scene"
)

var twoStates = []model.StateRecord{
	{State: "Ohio", Abbr: "OH", Poverty: 10, Age: 40, Income: 50000, Healthcare: 5, Smokes: 20, Obesity: 30},
	{State: "Utah", Abbr: "UT", Poverty: 5, Age: 30, Income: 60000, Healthcare: 2, Smokes: 10, Obesity: 20},
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	clk := clock.NewMock()
	loop := chart.NewLoop(chart.New(twoStates, scene.DefaultLayout(), clk.Now()), clk)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return New(loop, Options{}).Handler()
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func frameOf(t *testing.T, h http.Handler) scene.Frame {
	t.Helper()
	rr := do(t, h, http.MethodGet, "/api/frame")
	require.Equal(t, http.StatusOK, rr.Code)
	var f scene.Frame
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	return f
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestPageAndSnapshots(t *testing.T) {
	h := newTestServer(t)

	page := do(t, h, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, page.Body.String(), "<svg")

	img := do(t, h, http.MethodGet, "/chart.svg")
	assert.Equal(t, http.StatusOK, img.Code)
	assert.Equal(t, "image/svg+xml", img.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(img.Body.String(), "<svg"))

	raster := do(t, h, http.MethodGet, "/chart.png")
	assert.Equal(t, http.StatusOK, raster.Code)
	assert.Equal(t, "image/png", raster.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(raster.Body.String(), "\x89PNG"))
}

func TestFrame(t *testing.T) {
	h := newTestServer(t)
	f := frameOf(t, h)
	assert.Equal(t, model.DefaultSelection(), f.Selection)
	assert.Len(t, f.Markers, 2)
	assert.Len(t, f.Captions, 6)
	assert.NotEmpty(t, f.Binding)
}

func TestClick(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/captions/age/click")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp ClickResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Changed)
	assert.Equal(t, model.FieldAge, resp.Frame.Selection.X)
	assert.InDelta(t, 24, resp.Frame.XAxis.Domain[0].Float(), 1e-9)
	assert.InDelta(t, 48, resp.Frame.XAxis.Domain[1].Float(), 1e-9)

	rr = do(t, h, http.MethodPost, "/api/captions/AGE/click")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Changed, "clicking the active caption is a no-op")
}

func TestClick_UnknownField(t *testing.T) {
	h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/api/captions/height/click")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "unknown field", body["error"])
	assert.Equal(t, model.DefaultSelection(), frameOf(t, h).Selection)
}

func TestHoverAndLeave(t *testing.T) {
	h := newTestServer(t)
	binding := frameOf(t, h).Binding

	rr := do(t, h, http.MethodPost, "/api/markers/0/hover?binding="+binding)
	require.Equal(t, http.StatusOK, rr.Code)
	var tip scene.TooltipFrame
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tip))
	assert.True(t, tip.Visible)
	assert.Equal(t, "Ohio<br>Poverty: 10%<br>Lacks Health care: 5%", tip.Text)

	rr = do(t, h, http.MethodDelete, "/api/markers/0/hover?binding="+binding)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tip))
	assert.False(t, tip.Visible)
}

func TestHover_Errors(t *testing.T) {
	h := newTestServer(t)
	binding := frameOf(t, h).Binding

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/markers/9/hover?binding="+binding).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/markers/ohio/hover?binding="+binding).Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/api/markers/0/hover?binding=stale").Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/captions/smokes/click").Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/api/markers/0/hover?binding="+binding).Code,
		"binding from before the click is detached")
}

func TestCORS(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/captions/age/click", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoopStopped(t *testing.T) {
	loop := chart.NewLoop(chart.New(twoStates, scene.DefaultLayout(), clock.NewMock().Now()), nil)
	h := New(loop, Options{}).Handler()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/frame", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
