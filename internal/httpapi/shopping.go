package httpapi

import (
	"net/http"
	"strconv"

	"foodmarket-be/internal/catalog"
	"foodmarket-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.catalog.Availability(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, vendors)
}

// TopRestaurants accepts an optional ?limit=; anything not a positive integer
// falls back to the default.
func (h *Handler) TopRestaurants(w http.ResponseWriter, r *http.Request) {
	limit := catalog.DefaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	vendors, err := h.catalog.TopRestaurants(r.Context(), chi.URLParam(r, "pincode"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, vendors)
}

func (h *Handler) FoodsIn30Min(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.FoodsIn30Min(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, foods)
}

func (h *Handler) SearchFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.SearchFoods(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, foods)
}

func (h *Handler) RestaurantByID(w http.ResponseWriter, r *http.Request) {
	v, err := h.catalog.RestaurantByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}
