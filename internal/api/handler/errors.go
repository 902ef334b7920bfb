package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

// writeServiceError 服務層錯誤對應HTTP狀態
// 未知錯誤一律回覆固定訊息，不把內部錯誤內容送出去
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrNoActiveOrder),
		errors.Is(err, service.ErrItemNotInCart):
		api.ErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidRating):
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrOrderMismatch):
		api.ErrorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrGatewayUnavailable):
		api.ErrorJSON(w, http.StatusBadGateway, err.Error())
	default:
		api.ErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
