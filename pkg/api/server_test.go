package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/livelypi/lively/pkg/wallpaper"
)

func newTestServer(t *testing.T) (*Server, *MockController, *MockLibrary) {
	t.Helper()
	ctrl := &MockController{}
	lib := &MockLibrary{}
	return NewServer("127.0.0.1:0", ctrl, lib), ctrl, lib
}

func TestHandleHealth(t *testing.T) {
	srv, ctrl, _ := newTestServer(t)
	ctrl.On("Snapshot").Return([]wallpaper.RendererStatus{
		{Reference: "/walls/loop.mp4", Kind: "video", MonitorTarget: 0},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
	assert.NotEmpty(t, body["version"])
	assert.Len(t, body["renderers"], 1)
}

func TestHandleSet(t *testing.T) {
	srv, ctrl, lib := newTestServer(t)

	desc, err := wallpaper.NewDescriptor("/walls/photo.jpg")
	require.NoError(t, err)

	lib.On("Add", desc).Return(wallpaper.Entry{ID: "abc", Reference: desc.Reference})
	ctrl.On("Apply", desc).Return(wallpaper.Outcome{
		Status:  wallpaper.OutcomeApplied,
		Adapter: "feh",
	}, nil)

	payload := bytes.NewBufferString(`{"reference": "/walls/photo.jpg"}`)
	req := httptest.NewRequest(http.MethodPost, "/set", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "applied", body["status"])
	assert.Equal(t, "feh", body["adapter"])
	assert.Equal(t, "image", body["kind"])
	ctrl.AssertExpectations(t)
	lib.AssertExpectations(t)
}

func TestHandleSetWithMonitorAndProperties(t *testing.T) {
	srv, ctrl, lib := newTestServer(t)

	lib.On("Add", mock.AnythingOfType("wallpaper.Descriptor")).Return(wallpaper.Entry{ID: "abc"})
	ctrl.On("Apply", mock.MatchedBy(func(d wallpaper.Descriptor) bool {
		return d.MonitorTarget == 1 && d.Properties["hwdec"] == "auto"
	})).Return(wallpaper.Outcome{Status: wallpaper.OutcomeLaunched, Adapter: "mpv"}, nil)

	payload := bytes.NewBufferString(`{"reference": "/walls/loop.mp4", "monitor": 1, "properties": {"hwdec": "auto"}}`)
	req := httptest.NewRequest(http.MethodPost, "/set", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	ctrl.AssertExpectations(t)
}

func TestHandleSetInvalidReference(t *testing.T) {
	srv, _, _ := newTestServer(t)

	payload := bytes.NewBufferString(`{"reference": "   "}`)
	req := httptest.NewRequest(http.MethodPost, "/set", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSetAdapterMissing(t *testing.T) {
	srv, ctrl, lib := newTestServer(t)

	lib.On("Add", mock.AnythingOfType("wallpaper.Descriptor")).Return(wallpaper.Entry{ID: "abc"})
	ctrl.On("Apply", mock.AnythingOfType("wallpaper.Descriptor")).Return(wallpaper.Outcome{}, &wallpaper.DispatchError{
		Kind:    wallpaper.AdapterMissing,
		Adapter: "mpv",
		Err:     assert.AnError,
	})

	payload := bytes.NewBufferString(`{"reference": "/walls/loop.mp4"}`)
	req := httptest.NewRequest(http.MethodPost, "/set", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "adapter_missing", body["kind"])
}

func TestHandleSetMethodNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/set", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePauseResumeStop(t *testing.T) {
	tests := []struct {
		path   string
		method string
	}{
		{"/pause", "PauseAll"},
		{"/resume", "ResumeAll"},
		{"/stop", "StopAll"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			srv, ctrl, _ := newTestServer(t)
			ctrl.On(tc.method).Return(nil)

			req := httptest.NewRequest(http.MethodPost, tc.path, nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			ctrl.AssertExpectations(t)
		})
	}
}

func TestHandleLibraryList(t *testing.T) {
	srv, _, lib := newTestServer(t)
	lib.On("List").Return([]wallpaper.Entry{
		{ID: "a", Reference: "/walls/one.jpg", Kind: "image"},
		{ID: "b", Reference: "/walls/two.mp4", Kind: "video"},
	})

	req := httptest.NewRequest(http.MethodGet, "/library", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []wallpaper.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
}

func TestHandleLibraryRemove(t *testing.T) {
	srv, _, lib := newTestServer(t)
	lib.On("Remove", "abc").Return(wallpaper.Entry{ID: "abc"}, true)

	payload := bytes.NewBufferString(`{"id": "abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/library/remove", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	lib.AssertExpectations(t)
}

func TestHandleLibraryRemoveNotFound(t *testing.T) {
	srv, _, lib := newTestServer(t)
	lib.On("Remove", "missing").Return(wallpaper.Entry{}, false)

	payload := bytes.NewBufferString(`{"id": "missing"}`)
	req := httptest.NewRequest(http.MethodPost, "/library/remove", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/pause", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketBroadcast(t *testing.T) {
	srv, ctrl, _ := newTestServer(t)
	ctrl.On("Snapshot").Return(nil)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server a moment to register the client.
	time.Sleep(50 * time.Millisecond)

	desc, err := wallpaper.NewDescriptor("/walls/photo.jpg")
	require.NoError(t, err)
	require.NoError(t, srv.BroadcastWallpaperChanged(desc))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event map[string]interface{}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "wallpaper_changed", event["type"])
	assert.Equal(t, "/walls/photo.jpg", event["reference"])
	assert.Equal(t, "image", event["kind"])
}
