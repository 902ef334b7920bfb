package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	adminService service.IAdminService
}

func NewAdminHandler(adminService service.IAdminService) *AdminHandler {
	if adminService == nil {
		panic("adminService cannot be nil")
	}
	return &AdminHandler{adminService: adminService}
}

func parsePaging(r *http.Request) (page, pageSize int) {
	page = constants.DefaultPaging
	pageSize = constants.DefaultPagingSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
	}
	return
}

// 白名單式組條件，query參數不直接進SQL
func parseOrderCondition(r *http.Request) map[string]interface{} {
	condition := map[string]interface{}{}
	q := r.URL.Query()
	if v, err := strconv.ParseUint(q.Get("user_id"), 10, 64); err == nil {
		condition["user_id"] = uint(v)
	}
	if v, err := strconv.ParseBool(q.Get("ordered")); err == nil {
		condition["ordered"] = v
	}
	if v, err := strconv.ParseBool(q.Get("refund_requested")); err == nil {
		condition["refund_requested"] = v
	}
	if v, err := strconv.ParseBool(q.Get("refund_granted")); err == nil {
		condition["refund_granted"] = v
	}
	if v := q.Get("ref_code"); v != "" {
		condition["ref_code"] = v
	}
	return condition
}

func parseIDParam(r *http.Request, name string) (uint, bool) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	orders, total, err := h.adminService.ListOrders(r.Context(), page, pageSize, parseOrderCondition(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, convertOrderToDTO(&orders[i]))
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: orderDTOs, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) ListOrderItems(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	condition := map[string]interface{}{}
	q := r.URL.Query()
	if v, err := strconv.ParseUint(q.Get("user_id"), 10, 64); err == nil {
		condition["user_id"] = uint(v)
	}
	if v, err := strconv.ParseUint(q.Get("order_id"), 10, 64); err == nil {
		condition["order_id"] = uint(v)
	}

	items, total, err := h.adminService.ListOrderItems(r.Context(), page, pageSize, condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	condition := map[string]interface{}{}
	if v, err := strconv.ParseUint(r.URL.Query().Get("user_id"), 10, 64); err == nil {
		condition["user_id"] = uint(v)
	}

	addresses, total, err := h.adminService.ListAddresses(r.Context(), page, pageSize, condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: addresses, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	condition := map[string]interface{}{}
	if v := r.URL.Query().Get("method"); v != "" {
		condition["method"] = v
	}

	payments, total, err := h.adminService.ListPayments(r.Context(), page, pageSize, condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: payments, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	condition := map[string]interface{}{}
	if v, err := strconv.ParseBool(r.URL.Query().Get("accepted")); err == nil {
		condition["accepted"] = v
	}

	refunds, total, err := h.adminService.ListRefunds(r.Context(), page, pageSize, condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	refundDTOs := make([]dto.RefundDTO, 0, len(refunds))
	for i := range refunds {
		refundDTOs = append(refundDTOs, convertRefundToDTO(&refunds[i]))
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: refundDTOs, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	condition := map[string]interface{}{}
	if v, err := strconv.ParseBool(r.URL.Query().Get("approved")); err == nil {
		condition["approved"] = v
	}

	reviews, total, err := h.adminService.ListReviews(r.Context(), page, pageSize, condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	reviewDTOs := make([]dto.ReviewDTO, 0, len(reviews))
	for i := range reviews {
		reviewDTOs = append(reviewDTOs, convertReviewToDTO(&reviews[i]))
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: reviewDTOs, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	users, total, err := h.adminService.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: users, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	condition := map[string]interface{}{}
	if v := r.URL.Query().Get("category"); v != "" {
		condition["category"] = v
	}

	products, total, err := h.adminService.ListProducts(r.Context(), page, pageSize, condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, convertProductToDTO(&products[i]))
	}
	api.SuccessJSON(w, dto.PagedDTO{Items: productDTOs, Total: total, Page: page, PageSize: pageSize})
}

// GrantRefunds 批次核准退款
func (h *AdminHandler) GrantRefunds(w http.ResponseWriter, r *http.Request) {
	var grantDTO dto.GrantRefundsDTO
	if err := json.NewDecoder(r.Body).Decode(&grantDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.GrantRefunds(r.Context(), grantDTO.OrderIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

// UpdateDelivery 更新訂單配送狀態
func (h *AdminHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(r, "id")
	if !ok {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var deliveryDTO dto.UpdateDeliveryDTO
	if err := json.NewDecoder(r.Body).Decode(&deliveryDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.UpdateDelivery(r.Context(), orderID, deliveryDTO.BeingDelivered, deliveryDTO.Received); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var productDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&productDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if productDTO.Slug == "" || productDTO.Title == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "slug and title are required")
		return
	}

	price, err := decimal.NewFromString(productDTO.Price)
	if err != nil || price.IsNegative() {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid price")
		return
	}

	product := &model.Product{
		Slug:        productDTO.Slug,
		Title:       productDTO.Title,
		Price:       price,
		Stock:       productDTO.Stock,
		Category:    productDTO.Category,
		Description: productDTO.Description,
	}
	if err := h.adminService.CreateProduct(r.Context(), product); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertProductToDTO(product))
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "id")
	if !ok {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var productDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&productDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := decimal.NewFromString(productDTO.Price)
	if err != nil || price.IsNegative() {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid price")
		return
	}

	product := &model.Product{
		ProductID:   productID,
		Slug:        productDTO.Slug,
		Title:       productDTO.Title,
		Price:       price,
		Stock:       productDTO.Stock,
		Category:    productDTO.Category,
		Description: productDTO.Description,
	}
	if err := h.adminService.UpdateProduct(r.Context(), product); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, convertProductToDTO(product))
}

func (h *AdminHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "id")
	if !ok {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var stockDTO dto.UpdateStockDTO
	if err := json.NewDecoder(r.Body).Decode(&stockDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.UpdateStock(r.Context(), productID, stockDTO.Stock); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

// MarkOutOfStock 批次下架庫存
func (h *AdminHandler) MarkOutOfStock(w http.ResponseWriter, r *http.Request) {
	var markDTO dto.MarkOutOfStockDTO
	if err := json.NewDecoder(r.Body).Decode(&markDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.MarkOutOfStock(r.Context(), markDTO.ProductIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "id")
	if !ok {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.adminService.DeleteProduct(r.Context(), productID); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *AdminHandler) ApproveReviews(w http.ResponseWriter, r *http.Request) {
	var approveDTO dto.ApproveReviewsDTO
	if err := json.NewDecoder(r.Body).Decode(&approveDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.ApproveReviews(r.Context(), approveDTO.ReviewIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var couponDTO dto.CreateCouponDTO
	if err := json.NewDecoder(r.Body).Decode(&couponDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if couponDTO.Code == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "code is required")
		return
	}

	discount, err := decimal.NewFromString(couponDTO.Discount)
	if err != nil || discount.IsNegative() {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid discount")
		return
	}

	coupon := &model.Coupon{
		Code:     couponDTO.Code,
		Discount: discount,
	}
	if err := h.adminService.CreateCoupon(r.Context(), coupon); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, coupon)
}
