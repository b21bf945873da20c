package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/theme"
)

// stateResponse is the full snapshot a frontend needs to render.
type stateResponse struct {
	Documents []core.Document `json:"documents"`
	ActiveID  string          `json:"activeId"`
	Status    core.Status     `json:"status"`
	LoadError string          `json:"loadError,omitempty"`
}

type namePayload struct {
	Name string `json:"name"`
}

type idPayload struct {
	ID string `json:"id"`
}

type contentPayload struct {
	Content string `json:"content"`
}

type themePayload struct {
	Theme string `json:"theme"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{
		Documents: s.app.Store.Documents(),
		ActiveID:  s.app.Store.ActiveID(),
		Status:    s.app.Store.Status(),
	}
	if msg, ok := s.app.Store.LoadError(); ok {
		resp.LoadError = msg
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var payload namePayload
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	doc := s.app.Store.CreateDocument(payload.Name)
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	doc, ok := s.app.Store.Document(id)
	if !ok {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "document not found"})
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRenameDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var payload namePayload
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	if !s.app.Store.RenameDocument(id, payload.Name) {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "rename rejected"})
		return
	}
	doc, _ := s.app.Store.Document(id)
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.app.Store.DeleteDocument(id) {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "document not found"})
		return
	}
	// The store guarantees a non-empty set and a valid selection afterwards.
	s.respondJSON(w, http.StatusOK, stateResponse{
		Documents: s.app.Store.Documents(),
		ActiveID:  s.app.Store.ActiveID(),
		Status:    s.app.Store.Status(),
	})
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var payload idPayload
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	if !s.app.Store.SetActive(payload.ID) {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "document not found"})
		return
	}
	doc, _ := s.app.Store.Active()
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	var payload contentPayload
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	if !s.app.Store.UpdateContent(payload.Content) {
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: "no active document"})
		return
	}
	s.respondJSON(w, http.StatusOK, s.app.Store.Status())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.app.Store.Status())
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, themePayload{Theme: string(s.app.Themes.Current())})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var payload themePayload
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	t := theme.Theme(payload.Theme)
	if !t.Valid() {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown theme"})
		return
	}
	if err := s.app.Themes.Set(r.Context(), t); err != nil {
		// The preference changed in memory; only durability failed.
		s.logger.Warn("theme persistence failed", "error", err)
	}
	s.respondJSON(w, http.StatusOK, themePayload{Theme: string(s.app.Themes.Current())})
}

func (s *Server) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
