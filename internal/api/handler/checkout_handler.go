package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutHandler(checkoutService service.ICheckoutService) *CheckoutHandler {
	if checkoutService == nil {
		panic("checkoutService cannot be nil")
	}
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CashOnDelivery 貨到付款結帳
func (h *CheckoutHandler) CashOnDelivery(w http.ResponseWriter, r *http.Request) {
	var checkoutDTO dto.CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&checkoutDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if checkoutDTO.StreetAddress == "" || checkoutDTO.Country == "" || checkoutDTO.Zip == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "street address, country and zip are required")
		return
	}

	order, err := h.checkoutService.RecordCashOnDelivery(r.Context(), middleware.GetUserID(r.Context()), service.AddressInput{
		StreetAddress: checkoutDTO.StreetAddress,
		ApartmentAddr: checkoutDTO.ApartmentAddr,
		Country:       checkoutDTO.Country,
		Zip:           checkoutDTO.Zip,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertOrderToDTO(order))
}

// InitiateGateway 建立外部金流扣款單
func (h *CheckoutHandler) InitiateGateway(w http.ResponseWriter, r *http.Request) {
	gatewayOrder, err := h.checkoutService.InitiateGatewayOrder(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, gatewayOrder)
}

// GatewayCallback 金流方付款完成webhook
func (h *CheckoutHandler) GatewayCallback(w http.ResponseWriter, r *http.Request) {
	var callbackDTO dto.GatewayCallbackDTO
	if err := json.NewDecoder(r.Body).Decode(&callbackDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if callbackDTO.GatewayOrderRef == "" || callbackDTO.GatewayPaymentID == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "gateway_order_ref and gateway_payment_id are required")
		return
	}

	order, err := h.checkoutService.RecordGatewayPayment(r.Context(), callbackDTO.GatewayOrderRef, callbackDTO.GatewayPaymentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertOrderToDTO(order))
}
