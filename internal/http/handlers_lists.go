package http

import (
	"errors"
	"net/http"

	"mercado/internal/core"
	"mercado/internal/schema"
)

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(mapAll(s.planner.Lists(), schema.EncodeList)).Write(w)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}

	l, err := s.planner.CreateList(r.Context(), body.Get("name"), core.Budget(body.Value("budget")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if l.ID == "" {
		UnprocessableEntityError("list name is required").Write(w)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/lists/"+l.ID).
		Data(schema.EncodeList(l)).
		Write(w)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap := s.planner.Snapshot()
	l, ok := snap.List(id)
	if !ok {
		NotFoundError("list not found").Write(w)
		return
	}
	NewJSONResponse().Data(listWithItems(l, snap.ListItems(id))).Write(w)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.planner.Snapshot().List(id); !ok {
		NotFoundError("list not found").Write(w)
		return
	}
	body, ok := parseBody(w, r)
	if !ok {
		return
	}

	l, err := s.planner.UpdateList(r.Context(), id, core.ListChanges{
		Name:   body.String("name"),
		Budget: body.Float("budget", core.Budget),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if l.ID == "" {
		UnprocessableEntityError("list name cannot be empty").Write(w)
		return
	}
	NewJSONResponse().Data(schema.EncodeList(l)).Write(w)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, "list not found", s.planner.DeleteList)
}

func (s *Server) handleListSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.planner.Summary(r.PathValue("id"))
	if errors.Is(err, core.ErrNotFound) {
		NotFoundError("list not found").Write(w)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	NewJSONResponse().Data(toSummaryView(summary)).Write(w)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(toOverviewView(s.planner.Overview())).Write(w)
}
