package httpapi

import (
	"net/http"
	"strconv"

	"foodmarket-be/internal/order"
	"foodmarket-be/internal/upload"
	"foodmarket-be/internal/utils"
	"foodmarket-be/internal/vendor"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) VendorLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.vendors.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"signature": token})
}

func (h *Handler) VendorProfile(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	v, err := h.vendors.GetByID(r.Context(), vendorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) UpdateVendorProfile(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	var p vendor.UpdateProfileParams
	if !decodeJSON(w, r, &p) {
		return
	}
	p.VendorID = vendorID

	v, err := h.vendors.UpdateProfile(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) UpdateVendorCoverImage(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	names, err := h.images.SaveImages(r, imagesField)
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := h.vendors.AddCoverImages(r.Context(), vendorID, names)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) ToggleVendorService(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	v, err := h.vendors.ToggleService(r.Context(), vendorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

// AddFood reads the food fields from the multipart form, validates them and
// only then stores the uploaded images.
func (h *Handler) AddFood(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	p, err := foodParamsFromForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := utils.ValidateStruct(p); err != nil {
		writeError(w, r, err)
		return
	}

	p.Images, err = h.images.SaveImages(r, imagesField)
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := h.vendors.AddFood(r.Context(), vendorID, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, v)
}

func foodParamsFromForm(r *http.Request) (vendor.AddFoodParams, error) {
	var p vendor.AddFoodParams
	if err := r.ParseMultipartForm(upload.DefaultMaxMemory); err != nil {
		return p, &utils.ValidationError{Fields: []string{"body: multipart"}}
	}

	var bad []string
	readyTime, err := strconv.Atoi(r.FormValue("readyTime"))
	if err != nil {
		bad = append(bad, "readyTime: number")
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		bad = append(bad, "price: number")
	}
	if len(bad) > 0 {
		return p, &utils.ValidationError{Fields: bad}
	}

	p.Name = r.FormValue("name")
	p.Description = r.FormValue("description")
	p.Category = r.FormValue("category")
	p.FoodType = r.FormValue("foodType")
	p.ReadyTime = readyTime
	p.Price = price
	return p, nil
}

func (h *Handler) ListVendorFoods(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	foods, err := h.vendors.ListFoods(r.Context(), vendorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, foods)
}

func (h *Handler) VendorOrders(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListVendorOrders(r.Context(), vendorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) VendorOrder(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	o, err := h.orders.GetVendorOrder(r.Context(), vendorID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) ProcessOrder(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := identityID(w, r)
	if !ok {
		return
	}

	var p order.ProcessOrderParams
	if !decodeJSON(w, r, &p) {
		return
	}

	o, err := h.orders.ProcessOrder(r.Context(), vendorID, chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}
