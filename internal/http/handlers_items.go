package http

import (
	"net/http"

	"mercado/internal/core"
	"mercado/internal/schema"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.planner.Snapshot().List(id); !ok {
		NotFoundError("list not found").Write(w)
		return
	}
	NewJSONResponse().Data(mapAll(s.planner.Items(id), schema.EncodeItem)).Write(w)
}

// handleAddItem adds a free-form item, or one pre-filled from the catalog
// when catalogItemId is given.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")
	snap := s.planner.Snapshot()
	if _, ok := snap.List(listID); !ok {
		NotFoundError("list not found").Write(w)
		return
	}
	body, ok := parseBody(w, r)
	if !ok {
		return
	}

	var (
		it  core.ListItem
		err error
	)
	if catalogID := body.Get("catalogItemId"); catalogID != "" {
		if _, ok := snap.CatalogItem(catalogID); !ok {
			UnprocessableEntityError("unknown catalog item").Write(w)
			return
		}
		it, err = s.planner.AddCatalogItem(r.Context(), listID, catalogID, core.Quantity(body.Value("quantity")))
	} else {
		it, err = s.planner.AddItem(r.Context(), core.ListItem{
			ListID:         listID,
			Name:           body.Get("name"),
			CategoryID:     body.Get("categoryId"),
			CategoryName:   body.Get("category"),
			StoreID:        body.Get("storeId"),
			StoreName:      body.Get("store"),
			Quantity:       core.Quantity(body.Value("quantity")),
			Unit:           body.Get("unit"),
			EstimatedPrice: core.Price(body.Value("estimatedPrice")),
			IsChecked:      core.Flag(body.Value("isChecked")),
		})
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if it.ID == "" {
		UnprocessableEntityError("item name is required").Write(w)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Data(schema.EncodeItem(it)).Write(w)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.planner.Snapshot().Item(id); !ok {
		NotFoundError("item not found").Write(w)
		return
	}
	body, ok := parseBody(w, r)
	if !ok {
		return
	}

	it, err := s.planner.UpdateItem(r.Context(), id, core.ItemChanges{
		Name:           body.String("name"),
		CategoryID:     body.String("categoryId"),
		CategoryName:   body.String("category"),
		StoreID:        body.String("storeId"),
		StoreName:      body.String("store"),
		Quantity:       body.Float("quantity", core.Quantity),
		Unit:           body.String("unit"),
		EstimatedPrice: body.Float("estimatedPrice", core.Price),
		IsChecked:      body.Bool("isChecked"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if it.ID == "" {
		UnprocessableEntityError("item name cannot be empty").Write(w)
		return
	}
	NewJSONResponse().Data(schema.EncodeItem(it)).Write(w)
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.planner.ToggleItem(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if it.ID == "" {
		NotFoundError("item not found").Write(w)
		return
	}
	NewJSONResponse().Data(schema.EncodeItem(it)).Write(w)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, "item not found", s.planner.DeleteItem)
}
