package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"panda_pos/internal/catalog"
	"panda_pos/internal/sales"
	"panda_pos/internal/users"
)

// Stores bundles the storage backends the API is wired with, so the same
// routes can run on in-memory stores (tests, development) or Postgres.
type Stores struct {
	Catalog catalog.Store
	Ledger  sales.Ledger
	Users   users.Storage
}

// InitRoutes registers all endpoints on the given Gin engine backed by
// in-memory storage. Production wiring goes through InitRoutesWithStores.
func InitRoutes(e *gin.Engine) {
	InitRoutesWithStores(e, Stores{
		Catalog: catalog.NewLocalStorage(),
		Ledger:  sales.NewLocalLedger(),
		Users:   users.NewLocalStorage(),
	})
}

// InitRoutesWithStores registers all endpoints on the given Gin engine. It
// initializes the services and handlers over the given stores, then binds
// each HTTP method and path to the appropriate handler function.
func InitRoutesWithStores(e *gin.Engine, stores Stores) {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	salesService := sales.NewService(stores.Catalog, stores.Ledger, logger)
	salesHandler := NewSalesHandler(salesService, logger)

	catalogService := catalog.NewService(stores.Catalog, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)

	userService := users.NewService(stores.Users, logger)
	usersHandler := NewUsersHandler(userService, logger)

	e.POST("/sales", salesHandler.handleCreateSale)
	e.GET("/sales", salesHandler.handleListSales)
	e.GET("/sales/:id", salesHandler.handleGetSale)
	e.PUT("/sales/:id", salesHandler.handleUpdateSale)
	e.DELETE("/sales/:id", salesHandler.handleDeleteSale)

	reports := e.Group("/reports/sales")
	reports.GET("/product/:id", salesHandler.handleSalesByProduct)
	reports.GET("/payment-method/:id", salesHandler.handleSalesByPaymentMethod)
	reports.GET("/date/:date", salesHandler.handleSalesByDate)
	reports.GET("/range", salesHandler.handleSalesByDateRange)
	reports.GET("/today", salesHandler.handleSalesToday)
	reports.GET("/total/product/:id", salesHandler.handleTotalByProduct)
	reports.GET("/quantity/product/:id", salesHandler.handleQuantityByProduct)

	e.POST("/products", catalogHandler.handleCreateProduct)
	e.GET("/products", catalogHandler.handleListProducts)
	e.GET("/products/:id", catalogHandler.handleGetProduct)
	e.PUT("/products/:id", catalogHandler.handleUpdateProduct)
	e.DELETE("/products/:id", catalogHandler.handleDeleteProduct)

	e.POST("/payment-methods", catalogHandler.handleCreatePaymentMethod)
	e.GET("/payment-methods", catalogHandler.handleListPaymentMethods)
	e.GET("/payment-methods/:id", catalogHandler.handleGetPaymentMethod)
	e.PUT("/payment-methods/:id", catalogHandler.handleUpdatePaymentMethod)
	e.DELETE("/payment-methods/:id", catalogHandler.handleDeletePaymentMethod)

	e.POST("/users", usersHandler.handleCreateUser)
	e.GET("/users", usersHandler.handleListUsers)
	e.GET("/users/:id", usersHandler.handleGetUser)
	e.PUT("/users/:id", usersHandler.handleUpdateUser)
	e.DELETE("/users/:id", usersHandler.handleDeleteUser)
	e.POST("/login", usersHandler.handleLogin)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
