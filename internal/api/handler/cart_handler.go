package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService   service.ICartService
	couponService service.ICouponService
}

func NewCartHandler(cartService service.ICartService, couponService service.ICouponService) *CartHandler {
	if cartService == nil || couponService == nil {
		panic("cart handler dependencies cannot be nil")
	}
	return &CartHandler{
		cartService:   cartService,
		couponService: couponService,
	}
}

// GetCart 取得購物車
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	order, err := h.cartService.GetOpenOrder(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertOrderToDTO(order))
}

// AddItem 商品加入購物車
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	order, err := h.cartService.AddItem(r.Context(), middleware.GetUserID(r.Context()), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertOrderToDTO(order))
}

// RemoveItem 整條商品移出購物車
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	order, err := h.cartService.RemoveItem(r.Context(), middleware.GetUserID(r.Context()), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertOrderToDTO(order))
}

// DecrementItem 購物車商品數量減一
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	order, err := h.cartService.DecrementItem(r.Context(), middleware.GetUserID(r.Context()), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertOrderToDTO(order))
}

// ApplyCoupon 折價券掛上購物車
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var couponDTO dto.ApplyCouponDTO
	if err := json.NewDecoder(r.Body).Decode(&couponDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.couponService.ApplyCoupon(r.Context(), middleware.GetUserID(r.Context()), couponDTO.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertOrderToDTO(order))
}
