package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogService service.ICatalogService
}

func NewCatalogHandler(catalogService service.ICatalogService) *CatalogHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts 商品列表，?category=過濾分類
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, convertProductToDTO(&products[i]))
	}
	api.SuccessJSON(w, productDTOs)
}

// GetProduct 商品明細，含已審核評論
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalogService.GetProductDetail(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	reviews, err := h.catalogService.GetProductReviews(r.Context(), product.ProductID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	reviewDTOs := make([]dto.ReviewDTO, 0, len(reviews))
	for i := range reviews {
		reviewDTOs = append(reviewDTOs, convertReviewToDTO(&reviews[i]))
	}

	api.SuccessJSON(w, dto.ProductDetailDTO{
		ProductDTO: convertProductToDTO(product),
		Reviews:    reviewDTOs,
	})
}

// AddReview 新增商品評論
func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var reviewDTO dto.AddReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&reviewDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalogService.GetProductDetail(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	review := &model.ProductReview{
		ProductID: product.ProductID,
		UserID:    middleware.GetUserID(r.Context()),
		Rating:    reviewDTO.Rating,
		Comment:   reviewDTO.Comment,
	}
	if err := h.catalogService.AddReview(r.Context(), review); err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertReviewToDTO(review))
}
