package handler

import (
	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

func convertProductToDTO(product *model.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ProductID:   product.ProductID,
		Slug:        product.Slug,
		Title:       product.Title,
		Price:       product.Price.String(),
		Stock:       product.Stock,
		Category:    product.Category,
		Description: product.Description,
	}
}

func convertOrderToDTO(order *model.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		itemDTO := dto.OrderItemDTO{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().String(),
		}
		if item.Product != nil {
			itemDTO.Product = convertProductToDTO(item.Product)
		}
		items = append(items, itemDTO)
	}

	orderDTO := dto.OrderDTO{
		OrderID:         order.OrderID,
		RefCode:         order.RefCode,
		Items:           items,
		Total:           order.GetTotal().String(),
		Ordered:         order.Ordered,
		OrderedDate:     order.OrderedDate,
		RefundRequested: order.RefundRequested,
		RefundGranted:   order.RefundGranted,
		BeingDelivered:  order.BeingDelivered,
		Received:        order.Received,
	}
	if order.Coupon != nil {
		orderDTO.CouponCode = order.Coupon.Code
	}
	return orderDTO
}

func convertReviewToDTO(review *model.ProductReview) dto.ReviewDTO {
	return dto.ReviewDTO{
		ReviewID:  review.ReviewID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func convertRefundToDTO(refund *model.Refund) dto.RefundDTO {
	return dto.RefundDTO{
		RefundID: refund.RefundID,
		OrderID:  refund.OrderID,
		Reason:   refund.Reason,
		Email:    refund.Email,
		Accepted: refund.Accepted,
	}
}
