package http

import (
	"net/http"

	"mercado/internal/core"
	"mercado/internal/schema"
)

// Categories, stores and catalog templates: the reference data items point at.

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(mapAll(s.planner.Categories(), schema.EncodeCategory)).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	c, err := s.planner.CreateCategory(r.Context(), body.Get("name"), body.Get("icon"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if c.ID == "" {
		UnprocessableEntityError("category name is required").Write(w)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Data(schema.EncodeCategory(c)).Write(w)
}

// handleRenameCategory only accepts a name: renaming is the one change
// allowed on a category.
func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.planner.Snapshot().Category(id); !ok {
		NotFoundError("category not found").Write(w)
		return
	}
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	renamed, err := s.planner.RenameCategory(r.Context(), id, body.Get("name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !renamed {
		UnprocessableEntityError("category name cannot be empty").Write(w)
		return
	}
	c, _ := s.planner.Snapshot().Category(id)
	NewJSONResponse().Data(schema.EncodeCategory(c)).Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, "category not found", s.planner.DeleteCategory)
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(mapAll(s.planner.Stores(), schema.EncodeStore)).Write(w)
}

func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	st, err := s.planner.CreateStore(r.Context(), body.Get("name"), body.Get("location"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if st.ID == "" {
		UnprocessableEntityError("store name is required").Write(w)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Data(schema.EncodeStore(st)).Write(w)
}

func (s *Server) handleUpdateStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.planner.Snapshot().Store(id); !ok {
		NotFoundError("store not found").Write(w)
		return
	}
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	st, err := s.planner.UpdateStore(r.Context(), id, core.StoreChanges{
		Name:     body.String("name"),
		Location: body.String("location"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if st.ID == "" {
		UnprocessableEntityError("store name cannot be empty").Write(w)
		return
	}
	NewJSONResponse().Data(schema.EncodeStore(st)).Write(w)
}

func (s *Server) handleDeleteStore(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, "store not found", s.planner.DeleteStore)
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(mapAll(s.planner.Catalog(), schema.EncodeCatalogItem)).Write(w)
}

func (s *Server) handleCreateCatalogItem(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	c, err := s.planner.CreateCatalogItem(r.Context(), core.CatalogItem{
		Name:              body.Get("name"),
		DefaultCategoryID: body.Get("defaultCategoryId"),
		DefaultStoreID:    body.Get("defaultStoreId"),
		Unit:              body.Get("unit"),
		EstimatedPrice:    core.Price(body.Value("estimatedPrice")),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if c.ID == "" {
		UnprocessableEntityError("catalog item name is required").Write(w)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Data(schema.EncodeCatalogItem(c)).Write(w)
}

func (s *Server) handleUpdateCatalogItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.planner.Snapshot().CatalogItem(id); !ok {
		NotFoundError("catalog item not found").Write(w)
		return
	}
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	c, err := s.planner.UpdateCatalogItem(r.Context(), id, core.CatalogChanges{
		Name:              body.String("name"),
		DefaultCategoryID: body.String("defaultCategoryId"),
		DefaultStoreID:    body.String("defaultStoreId"),
		Unit:              body.String("unit"),
		EstimatedPrice:    body.Float("estimatedPrice", core.Price),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if c.ID == "" {
		UnprocessableEntityError("catalog item name cannot be empty").Write(w)
		return
	}
	NewJSONResponse().Data(schema.EncodeCatalogItem(c)).Write(w)
}

func (s *Server) handleDeleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, "catalog item not found", s.planner.DeleteCatalogItem)
}
