package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kioscosoft/distribuidora-api/internal/application/auth"
	"github.com/kioscosoft/distribuidora-api/internal/application/cash"
	"github.com/kioscosoft/distribuidora-api/internal/application/catalog"
	"github.com/kioscosoft/distribuidora-api/internal/application/notifications"
	"github.com/kioscosoft/distribuidora-api/internal/application/orders"
	"github.com/kioscosoft/distribuidora-api/internal/application/reports"
	"github.com/kioscosoft/distribuidora-api/internal/application/routes"
	"github.com/kioscosoft/distribuidora-api/internal/application/shipping"
	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *catalog.ProductUseCase
	CustomerUC     *catalog.CustomerUseCase
	OrderUC        *orders.UseCase
	RouteUC        *routes.UseCase
	CashUC         *cash.UseCase
	ShipmentUC     *shipping.UseCase
	NotificationUC *notifications.UseCase
	ReportUC       *reports.UseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Alta de usuarios: solo admin
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)
	protected.Put("/me/preferences", authHandler.UpdatePrefs)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Delete)

	// Orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	routeHandler := NewRouteHandler(deps.RouteUC)
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Get("/:id/share-link", orderHandler.ShareLink)
	ordersGroup.Put("/:id/route", routeHandler.ToggleOrder)
	ordersGroup.Post("/:id/deliver", routeHandler.Deliver)
	ordersGroup.Post("/:id/shipment", shipmentHandler.Create)
	ordersGroup.Get("/:id/shipment", shipmentHandler.GetByOrder)
	ordersGroup.Put("/:id/shipment/status", shipmentHandler.UpdateStatus)
	ordersGroup.Get("/:id/label", shipmentHandler.Label)

	// Delivery routes
	routesGroup := protected.Group("/routes")
	routesGroup.Post("/", routeHandler.Create)
	routesGroup.Get("/", routeHandler.List)
	routesGroup.Get("/:id", routeHandler.GetByID)
	routesGroup.Post("/:id/start", routeHandler.Start)
	routesGroup.Post("/:id/complete", routeHandler.Complete)

	// Cash
	cashGroup := protected.Group("/cash")
	cashHandler := NewCashHandler(deps.CashUC)
	cashGroup.Post("/shifts", cashHandler.OpenShift)
	cashGroup.Get("/shifts", cashHandler.List)
	cashGroup.Get("/shifts/open", cashHandler.GetOpen)
	cashGroup.Post("/shifts/close", cashHandler.CloseShift)
	cashGroup.Post("/transactions", cashHandler.AddTransaction)

	// Notifications
	notifGroup := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifGroup.Get("/", notificationHandler.List)
	notifGroup.Post("/:id/read", notificationHandler.MarkRead)

	// Reports (solo admin)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/orders", reportHandler.OrdersReport)
}
