package http

import (
	"net/http"

	"mercado/internal/services"
)

type countsView struct {
	Lists      int `json:"lists"`
	Items      int `json:"items"`
	Categories int `json:"categories"`
	Stores     int `json:"stores"`
	Catalog    int `json:"catalog"`
}

func (s *Server) counts() countsView {
	snap := s.planner.Snapshot()
	return countsView{
		Lists:      len(snap.Lists),
		Items:      len(snap.Items),
		Categories: len(snap.Categories),
		Stores:     len(snap.Stores),
		Catalog:    len(snap.Catalog),
	}
}

// handleSeed fills empty collections with starter data.
func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := services.Seed(r.Context(), s.planner); err != nil {
		s.fail(w, r, err)
		return
	}
	NewJSONResponse().Data(s.counts()).Write(w)
}

// handleReset wipes every persisted collection.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.Reset(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	NoContent().Write(w)
}

// handleRefresh reloads state written by another process.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.Refresh(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	NewJSONResponse().Data(s.counts()).Write(w)
}
