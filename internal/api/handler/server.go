package handler

// Server 集中持有所有handler
type Server struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	OrderHandler    *OrderHandler
	AdminHandler    *AdminHandler
}

func NewServer(
	catalogHandler *CatalogHandler,
	cartHandler *CartHandler,
	checkoutHandler *CheckoutHandler,
	orderHandler *OrderHandler,
	adminHandler *AdminHandler,
) *Server {
	return &Server{
		CatalogHandler:  catalogHandler,
		CartHandler:     cartHandler,
		CheckoutHandler: checkoutHandler,
		OrderHandler:    orderHandler,
		AdminHandler:    adminHandler,
	}
}
