package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type OrderHandler struct {
	orderService  service.IOrderService
	refundService service.IRefundService
}

func NewOrderHandler(orderService service.IOrderService, refundService service.IRefundService) *OrderHandler {
	if orderService == nil || refundService == nil {
		panic("order handler dependencies cannot be nil")
	}
	return &OrderHandler{
		orderService:  orderService,
		refundService: refundService,
	}
}

// ListOrders 使用者已結帳訂單，新到舊
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetUserOrders(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, convertOrderToDTO(&orders[i]))
	}
	api.SuccessJSON(w, orderDTOs)
}

// RequestRefund 以訂單編號申請退款
func (h *OrderHandler) RequestRefund(w http.ResponseWriter, r *http.Request) {
	var refundDTO dto.RefundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&refundDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if refundDTO.RefCode == "" || refundDTO.Email == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "ref_code and email are required")
		return
	}

	refund, err := h.refundService.RequestRefund(r.Context(), refundDTO.RefCode, refundDTO.Email, refundDTO.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertRefundToDTO(refund))
}
