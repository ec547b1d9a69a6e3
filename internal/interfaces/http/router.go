package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/activity"
	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/sale"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	WarehouseUC *usecase.WarehouseUseCase
	InventoryUC *usecase.InventoryUseCase
	SaleUC      *sale.UseCase
	ActivityUC  *activity.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido, solo quien administra usuarios)
	users := protected.Group("/users", RequireCapability(entity.CapabilityManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Inventory (protegido). Las rutas fijas van antes que /:id.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/", inventoryHandler.Create)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/stats", inventoryHandler.Stats)
	invGroup.Get("/search", inventoryHandler.Search)
	invGroup.Get("/category/:category", inventoryHandler.ListByCategory)
	invGroup.Get("/warehouse/:warehouseID", inventoryHandler.ListByWarehouse)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Put("/:id", inventoryHandler.Update)
	invGroup.Post("/:id/adjust", inventoryHandler.AdjustQuantity)
	invGroup.Delete("/:id", inventoryHandler.Delete)

	// Sells (protegido). El registro exige la capacidad de venta; el caso de
	// uso la vuelve a verificar por su cuenta.
	sells := protected.Group("/sells")
	sellHandler := NewSellHandler(deps.SaleUC)
	sells.Post("/", RequireCapability(entity.CapabilitySell), sellHandler.Create)
	sells.Get("/", sellHandler.List)
	sells.Get("/warehouse/:warehouseID", sellHandler.ListByWarehouse)
	sells.Get("/item/:itemID", sellHandler.ListByItem)
	sells.Get("/:id", sellHandler.GetByID)

	// Activities (protegido, solo lectura)
	activities := protected.Group("/activities")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Get("/", activityHandler.List)
	activities.Get("/user/:userID", activityHandler.ListByUser)
	activities.Get("/entity/:entityType/:entityID", activityHandler.ListByEntity)
	activities.Get("/entity-type/:entityType", activityHandler.ListByEntityType)
	activities.Get("/type/:type", activityHandler.ListByType)
}
