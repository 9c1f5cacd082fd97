package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/utechsu/councilpulse/internal/assessment"
	"github.com/utechsu/councilpulse/internal/assessment/export"
	"github.com/utechsu/councilpulse/internal/assessment/insights"
	"github.com/utechsu/councilpulse/internal/assessment/store"
)

// maxBodyBytes caps request payloads; assessment submissions and import
// files are small.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to do but note it.
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// handleSubmit accepts a new assessment response. The timestamp is always
// assigned here so clients cannot backdate records.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var resp assessment.Response
	if err := readJSON(w, r, &resp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp.Timestamp = ""
	resp.Stamp(time.Now())
	resp.Normalize()

	status, err := s.store.Append(r.Context(), resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store response")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":    status,
		"timestamp": resp.Timestamp,
	})
}

// handleInsights serves the dashboard aggregate over the current collection.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	all, _, err := s.store.LoadAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load responses")
		return
	}
	writeJSON(w, http.StatusOK, insights.BuildSummary(all))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"responses":      count,
		"remote_enabled": s.store.RemoteEnabled(),
		"pending_sync":   s.store.Pending(),
	})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := checkAdminPassword(s.cfg.AdminPassword, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := issueAdminToken(s.cfg.JWTSecret, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleListResponses returns the full collection with its durability status.
func (s *Server) handleListResponses(w http.ResponseWriter, r *http.Request) {
	all, status, err := s.store.LoadAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load responses")
		return
	}
	if all == nil {
		all = []assessment.Response{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"responses": all,
	})
}

// handleRefresh reloads the collection from the remote tier.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	all, status, err := s.store.LoadAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to refresh responses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"responses": len(all),
	})
}

// handleSync retries remote appends for records stuck in the pending queue.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	synced, err := s.store.Sync(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sync failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"synced":  synced,
		"pending": s.store.Pending(),
	})
}

// handleClear empties the local cache. Remote data is untouched.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "clear failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	all, _, err := s.store.LoadAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load responses")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="responses.csv"`)
	if err := export.WriteCSV(w, all); err != nil {
		log.Printf("write csv export: %v", err)
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	all, _, err := s.store.LoadAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load responses")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="responses.json"`)
	if err := export.WriteJSON(w, all); err != nil {
		log.Printf("write json export: %v", err)
	}
}

// handleImport appends records from an uploaded interchange file. Records
// keep their own timestamps; missing ones get stamped on arrival.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	rs, err := export.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid import payload")
		return
	}
	if len(rs) == 0 {
		writeError(w, http.StatusBadRequest, "no responses in payload")
		return
	}

	imported := 0
	degraded := false
	for _, resp := range rs {
		if resp.Timestamp == "" {
			resp.Stamp(time.Now())
		}
		status, err := s.store.Append(r.Context(), resp)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "import aborted")
			return
		}
		if status == store.StatusLocalOnly {
			degraded = true
		}
		imported++
	}

	result := map[string]any{"imported": imported}
	if degraded {
		result["status"] = store.StatusLocalOnly
	} else {
		result["status"] = "ok"
	}
	writeJSON(w, http.StatusOK, result)
}
