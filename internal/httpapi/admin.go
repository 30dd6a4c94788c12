package httpapi

import (
	"net/http"

	"foodmarket-be/internal/utils"
	"foodmarket-be/internal/vendor"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var p vendor.CreateVendorParams
	if !decodeJSON(w, r, &p) {
		return
	}

	v, err := h.vendors.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.vendors.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, vendors)
}

func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	v, err := h.vendors.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}
