package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/livelypi/lively/pkg/wallpaper"
	"github.com/livelypi/lively/util/log"
)

// WallpaperController is the subset of the supervisor the server drives.
type WallpaperController interface {
	Apply(desc wallpaper.Descriptor) (wallpaper.Outcome, error)
	PauseAll() error
	ResumeAll() error
	StopAll() error
	Snapshot() []wallpaper.RendererStatus
}

// LibraryStore is the subset of the library the server exposes.
type LibraryStore interface {
	Add(desc wallpaper.Descriptor) wallpaper.Entry
	Remove(id string) (wallpaper.Entry, bool)
	List() []wallpaper.Entry
}

// Server is the local REST/WebSocket control surface. It binds to
// loopback only; one-shot CLI invocations use it to reach the renderers
// tracked by a running daemon.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader
	addr       string

	// WebSocket management
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex

	controller WallpaperController
	library    LibraryStore
}

// NewServer creates a new control server.
func NewServer(addr string, controller WallpaperController, library LibraryStore) *Server {
	s := &Server{
		mux:  http.NewServeMux(),
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:    make(map[*websocket.Conn]bool),
		controller: controller,
		library:    library,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/set", s.enableCORS(s.handleSet))
	s.mux.HandleFunc("/pause", s.enableCORS(s.handlePause))
	s.mux.HandleFunc("/resume", s.enableCORS(s.handleResume))
	s.mux.HandleFunc("/stop", s.enableCORS(s.handleStop))
	s.mux.HandleFunc("/library", s.enableCORS(s.handleLibrary))
	s.mux.HandleFunc("/library/remove", s.enableCORS(s.handleLibraryRemove))
}

// enableCORS adds CORS headers so web wallpaper pages can call back into
// the local API.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the server. This blocks until Stop is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

// wallpaperEvent is pushed to every connected WebSocket client when a
// wallpaper changes.
type wallpaperEvent struct {
	Type      string `json:"type"`
	Reference string `json:"reference"`
	Kind      string `json:"kind"`
	Monitor   int    `json:"monitor"`
}

// BroadcastWallpaperChanged notifies all connected clients of a change.
func (s *Server) BroadcastWallpaperChanged(desc wallpaper.Descriptor) error {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	msg := wallpaperEvent{
		Type:      "wallpaper_changed",
		Reference: desc.Reference,
		Kind:      desc.Kind.String(),
		Monitor:   desc.MonitorTarget,
	}

	for client := range s.clients {
		if err := client.WriteJSON(msg); err != nil {
			log.Printf("Failed to broadcast to client: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
	return nil
}
