package handler

import "net/http"

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string `json:"status"`
	Loaded        bool   `json:"loaded"`
	Itineraries   int    `json:"itineraries"`
	LoadError     string `json:"loadError,omitempty"`
	LastSaveError string `json:"lastSaveError,omitempty"`
}

// GetHealth handles GET /healthz.
// It always returns 200 while the process is serving. The status is
// "degraded" until the initial load resolves, for the rest of the run if that
// load failed (edits are then kept in memory only), and while the last save
// failed. None of these block reads or edits.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	body := HealthResponse{Status: "ok", Loaded: true}
	if s.observer != nil {
		st := s.observer.Status()
		body.Loaded = st.Loaded
		body.Itineraries = st.Count
		if st.LoadError != nil {
			body.LoadError = st.LoadError.Error()
		}
		if st.LastSaveError != nil {
			body.LastSaveError = st.LastSaveError.Error()
		}
		if !st.Loaded || st.LoadError != nil || st.LastSaveError != nil {
			body.Status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, body)
}
