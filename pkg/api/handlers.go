package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/livelypi/lively/config"
	"github.com/livelypi/lively/pkg/wallpaper"
	"github.com/livelypi/lively/util/log"
)

// handleHealth returns the server health status and renderer snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	payload := map[string]interface{}{
		"status":  "running",
		"version": config.AppVersion,
	}
	if s.controller != nil {
		payload["renderers"] = s.controller.Snapshot()
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleWebSocket upgrades the connection to WebSocket and keeps it
// registered for broadcasts until the peer goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	for {
		// Keepalive reads; clients only listen for events.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// setRequest is the body of POST /set.
type setRequest struct {
	Reference  string            `json:"reference"`
	Monitor    *int              `json:"monitor,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// handleSet classifies and dispatches a wallpaper reference.
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	opts := make([]wallpaper.DescriptorOption, 0, len(req.Properties)+1)
	if req.Monitor != nil {
		opts = append(opts, wallpaper.WithMonitor(*req.Monitor))
	}
	for k, v := range req.Properties {
		opts = append(opts, wallpaper.WithProperty(k, v))
	}

	desc, err := wallpaper.NewDescriptor(req.Reference, opts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s.library != nil {
		s.library.Add(desc)
	}

	out, err := s.controller.Apply(desc)
	if err != nil {
		writeDispatchError(w, err)
		return
	}

	if err := s.BroadcastWallpaperChanged(desc); err != nil {
		log.Printf("Broadcast failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  out.Status.String(),
		"adapter": out.Adapter,
		"kind":    desc.Kind.String(),
	})
}

// writeDispatchError maps dispatch failures onto HTTP status codes.
func writeDispatchError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	var de *wallpaper.DispatchError
	if errors.As(err, &de) {
		kind = de.Kind.String()
		switch de.Kind {
		case wallpaper.AdapterMissing:
			status = http.StatusServiceUnavailable
		case wallpaper.AdapterLaunchFailed:
			status = http.StatusBadGateway
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"kind":  kind,
	})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, r, s.controller.PauseAll)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, r, s.controller.ResumeAll)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, r, s.controller.StopAll)
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request, action func() error) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := action(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleLibrary lists the saved wallpaper entries.
func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.library == nil {
		http.Error(w, "Library not available", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.library.List())
}

// handleLibraryRemove deletes one library entry by id.
func (s *Server) handleLibraryRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.library == nil {
		http.Error(w, "Library not available", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "Entry id is required", http.StatusBadRequest)
		return
	}

	if _, ok := s.library.Remove(req.ID); !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
