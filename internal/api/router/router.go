package router

import (
	"github.com/RoyceAzure/lab/storefront/internal/api/handler"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *handler.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		//商品目錄，公開
		r.Get("/products", server.CatalogHandler.ListProducts)
		r.Get("/products/{slug}", server.CatalogHandler.GetProduct)
		r.With(m.UserMiddleware).Post("/products/{slug}/reviews", server.CatalogHandler.AddReview)

		//購物車，需使用者身分
		r.Group(func(r chi.Router) {
			r.Use(m.UserMiddleware)
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Post("/items/{slug}", server.CartHandler.AddItem)
				r.Delete("/items/{slug}", server.CartHandler.RemoveItem)
				r.Post("/items/{slug}/decrement", server.CartHandler.DecrementItem)
				r.Post("/coupon", server.CartHandler.ApplyCoupon)
			})

			r.Post("/checkout/cod", server.CheckoutHandler.CashOnDelivery)
			r.Post("/checkout/gateway", server.CheckoutHandler.InitiateGateway)

			r.Get("/orders", server.OrderHandler.ListOrders)
		})

		//金流方webhook，沒有使用者身分
		r.Post("/checkout/gateway/callback", server.CheckoutHandler.GatewayCallback)

		//退款申請憑訂單編號，不需登入
		r.Post("/refunds", server.OrderHandler.RequestRefund)

		//後台管理
		r.Route("/admin", func(r chi.Router) {
			r.Get("/orders", server.AdminHandler.ListOrders)
			r.Put("/orders/{id}/delivery", server.AdminHandler.UpdateDelivery)
			r.Get("/order-items", server.AdminHandler.ListOrderItems)
			r.Get("/addresses", server.AdminHandler.ListAddresses)
			r.Get("/payments", server.AdminHandler.ListPayments)
			r.Get("/refunds", server.AdminHandler.ListRefunds)
			r.Post("/refunds/grant", server.AdminHandler.GrantRefunds)
			r.Get("/reviews", server.AdminHandler.ListReviews)
			r.Post("/reviews/approve", server.AdminHandler.ApproveReviews)
			r.Get("/users", server.AdminHandler.ListUsers)
			r.Get("/products", server.AdminHandler.ListProducts)
			r.Post("/products", server.AdminHandler.CreateProduct)
			r.Put("/products/{id}", server.AdminHandler.UpdateProduct)
			r.Put("/products/{id}/stock", server.AdminHandler.UpdateStock)
			r.Post("/products/out-of-stock", server.AdminHandler.MarkOutOfStock)
			r.Delete("/products/{id}", server.AdminHandler.DeleteProduct)
			r.Post("/coupons", server.AdminHandler.CreateCoupon)
		})
	})

	return r
}
