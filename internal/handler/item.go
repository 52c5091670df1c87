package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/stockroom-go/internal/middleware"
	"github.com/stockroom/stockroom-go/internal/model"
	"github.com/stockroom/stockroom-go/internal/service"
)

// ItemHandler handles item CRUD requests.
type ItemHandler struct {
	service *service.ItemService
}

func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{service: svc}
}

// HandleList handles GET /items requests.
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	items, err := h.service.List(r.Context(), page)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleGet handles GET /items/{id} requests.
func (h *ItemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeItemError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleCreate handles POST /items requests. The owner is stamped
// from the bearer identity attached by the guard.
func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized access")
		return
	}
	ownerID, err := claims.UserID()
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "unauthorized access")
		return
	}

	var req model.CreateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	item, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		writeItemError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// HandleUpdate handles PATCH /items/{id} requests.
func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req model.UpdateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	item, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeItemError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleDelete handles DELETE /items/{id} requests.
func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeItemError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Item deleted"})
}

func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}

// pageFromQuery parses optional limit/offset query parameters.
func pageFromQuery(r *http.Request) (model.Page, error) {
	var page model.Page

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return model.Page{}, err
		}
		page.Limit = limit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return model.Page{}, err
		}
		page.Offset = offset
	}

	return page, nil
}

func writeItemError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCreateItemFailed),
		errors.Is(err, service.ErrUpdateItemFailed),
		errors.Is(err, service.ErrDeleteItemFailed):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
