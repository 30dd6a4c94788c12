package httpapi

import (
	"errors"
	"net/http"

	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/catalog"
	"foodmarket-be/internal/customer"
	"foodmarket-be/internal/logger"
	"foodmarket-be/internal/notification"
	"foodmarket-be/internal/order"
	"foodmarket-be/internal/upload"
	"foodmarket-be/internal/utils"
	"foodmarket-be/internal/vendor"

	"go.uber.org/zap"
)

const (
	msgNotFound      = "data not found"
	msgNotAuthorized = "not authorized"
	msgInvalidBody   = "invalid request body"
)

var (
	notFoundErrors = []error{
		catalog.ErrNotFound,
		vendor.ErrVendorNotFound,
		vendor.ErrNoVendors,
		customer.ErrCustomerNotFound,
		order.ErrOrderNotFound,
		cart.ErrCartItemNotFound,
		cart.ErrFoodNotFound,
	}
	conflictErrors = []error{
		vendor.ErrEmailExists,
		customer.ErrAccountExists,
		customer.ErrAlreadyVerified,
		order.ErrInvalidTransition,
	}
	badRequestErrors = []error{
		customer.ErrInvalidOTP,
		order.ErrInvalidStatus,
		order.ErrNoOrderableItems,
		cart.ErrInvalidUnit,
		upload.ErrTooManyFiles,
		upload.ErrUnsupportedType,
		upload.ErrInvalidImage,
		upload.ErrInvalidForm,
	}
	unauthorizedErrors = []error{
		vendor.ErrInvalidCredentials,
		customer.ErrInvalidCredentials,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError maps a service error onto a status code and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"fields":  verr.Fields,
		})
	case isAny(err, notFoundErrors):
		utils.WriteJSONError(w, msgNotFound, http.StatusNotFound)
	case isAny(err, conflictErrors):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	case isAny(err, badRequestErrors):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case isAny(err, unauthorizedErrors):
		utils.WriteJSONError(w, msgNotAuthorized, http.StatusUnauthorized)
	case errors.Is(err, notification.ErrDeliveryFailed):
		utils.WriteJSONError(w, err.Error(), http.StatusBadGateway)
	default:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "http"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}
