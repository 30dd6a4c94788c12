package httpapi

import (
	"net/http"
	"strconv"

	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/customer"
	"foodmarket-be/internal/order"
	"foodmarket-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type verifyRequest struct {
	OTP string `json:"otp" validate:"required,numeric,len=6"`
}

func writeToken(w http.ResponseWriter, token string, c *customer.Customer) {
	utils.WriteJSON(w, http.StatusCreated, tokenResponse{
		Signature: token,
		Verified:  c.Verified,
		Email:     c.Email,
	})
}

func (h *Handler) CustomerSignUp(w http.ResponseWriter, r *http.Request) {
	var p customer.SignUpParams
	if !decodeJSON(w, r, &p) {
		return
	}

	token, c, err := h.customers.SignUp(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeToken(w, token, c)
}

func (h *Handler) CustomerLogin(w http.ResponseWriter, r *http.Request) {
	var p customer.LoginParams
	if !decodeJSON(w, r, &p) {
		return
	}

	token, c, err := h.customers.Login(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeToken(w, token, c)
}

func (h *Handler) CustomerVerify(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeError(w, r, err)
		return
	}
	code, _ := strconv.Atoi(req.OTP)

	token, c, err := h.customers.Verify(r.Context(), customerID, code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeToken(w, token, c)
}

func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	if err := h.customers.RequestOTP(r.Context(), customerID); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to your registered phone number"})
}

func (h *Handler) CustomerProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	c, err := h.customers.GetProfile(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) EditCustomerProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	var p customer.EditProfileParams
	if !decodeJSON(w, r, &p) {
		return
	}

	c, err := h.customers.EditProfile(r.Context(), customerID, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	var line cart.Line
	if !decodeJSON(w, r, &line) {
		return
	}
	if err := utils.ValidateStruct(line); err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.carts.AddToCart(r.Context(), customerID, line.FoodID, line.Unit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	items, err := h.carts.GetCart(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(r.Context(), customerID); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, []cart.Item{})
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	items, err := h.carts.RemoveFromCart(r.Context(), customerID, chi.URLParam(r, "foodId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	var p order.CreateOrderParams
	if !decodeJSON(w, r, &p) {
		return
	}

	o, err := h.orders.CreateOrder(r.Context(), customerID, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) CustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListCustomerOrders(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) CustomerOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := identityID(w, r)
	if !ok {
		return
	}

	o, err := h.orders.GetCustomerOrder(r.Context(), customerID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}
