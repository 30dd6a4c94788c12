package httpapi

import (
	"encoding/json"
	"net/http"

	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/catalog"
	"foodmarket-be/internal/customer"
	"foodmarket-be/internal/order"
	"foodmarket-be/internal/utils"
	"foodmarket-be/internal/vendor"
)

const imagesField = "images"

// ImageSaver stores the files of a multipart field and returns their names.
type ImageSaver interface {
	SaveImages(r *http.Request, field string) ([]string, error)
}

// Handler serves every REST route. Each role's handlers live in their own file.
type Handler struct {
	vendors   vendor.Service
	catalog   catalog.Service
	customers customer.Service
	carts     cart.Service
	orders    order.Service
	images    ImageSaver
}

func NewHandler(
	vendors vendor.Service,
	catalogSvc catalog.Service,
	customers customer.Service,
	carts cart.Service,
	orders order.Service,
	images ImageSaver,
) *Handler {
	return &Handler{
		vendors:   vendors,
		catalog:   catalogSvc,
		customers: customers,
		carts:     carts,
		orders:    orders,
		images:    images,
	}
}

// decodeJSON reads the body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteJSONError(w, msgInvalidBody, http.StatusBadRequest)
		return false
	}
	return true
}

// identityID returns the authenticated caller id. Routes using it sit behind
// middleware.Authenticate, so a missing identity is treated as unauthorized.
func identityID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, msgNotAuthorized, http.StatusUnauthorized)
		return "", false
	}
	return id, true
}

type tokenResponse struct {
	Signature string `json:"signature"`
	Verified  bool   `json:"verified"`
	Email     string `json:"email"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
