package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps groups everything the router wires into handlers.
type RouterDeps struct {
	ProductSvc ProductService
	StoreSvc   StoreService
	Committer  MovementCommitter
	Rebuilder  LevelRebuilder
	Queries    StockQueryService
}

// Router registers all API routes.
func Router(app *fiber.App, deps RouterDeps) {
	products := NewProductHandler(deps.ProductSvc)
	stores := NewStoreHandler(deps.StoreSvc)
	stock := NewInventoryHandler(deps.Committer, deps.Rebuilder, deps.Queries)

	api := app.Group("/api")

	api.Post("/products", products.Create)
	api.Get("/products", products.List)
	api.Get("/products/:id", products.GetByID)

	api.Post("/stores", stores.Create)
	api.Get("/stores", stores.List)
	api.Get("/stores/:id", stores.GetByID)
	api.Get("/stores/:id/levels", stock.ListStoreLevels)

	api.Post("/movements", stock.SubmitMovement)
	api.Get("/movements", stock.ListMovements)

	api.Get("/levels/:productID/:storeID", stock.GetLevel)
	api.Post("/levels/:productID/:storeID/rebuild", stock.RebuildLevel)
}
