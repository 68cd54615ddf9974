package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/bidhaus/auction-backend/docs" // Импорт сгенерированных файлов
	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(
	sessionUC usecase.SessionUC,
	auctionUC usecase.AuctionUC,
	categoryUC usecase.CategoryUC,
	minioCfg *cfg.MinIOCfg,
) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		authHandler := NewAuthHandler(sessionUC, r.logger)
		productHandler := NewProductHandler(auctionUC, minioCfg, r.logger)
		categoryHandler := NewCategoryHandler(categoryUC, r.logger)

		registerAuthRoutes(v1, authHandler)

		v1.Group(func(protected chi.Router) {
			protected.Use(SessionMiddleware(sessionUC))

			protected.Post("/auth/logout", authHandler.logOut)
			registerProductRoutes(protected, productHandler)
			registerCategoryRoutes(protected, categoryHandler)
		})
	})
}

func registerAuthRoutes(router chi.Router, authHandler *AuthHandler) {
	router.Post("/auth/register", authHandler.register)
	router.Post("/auth/login", authHandler.logIn)
}

func registerProductRoutes(router chi.Router, productHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", productHandler.createProduct)
		pr.Get("/", productHandler.listOthers)
		pr.Get("/{id}", productHandler.getProduct)
		pr.Post("/{id}/close", productHandler.closeProduct)
		pr.Post("/{id}/bids", productHandler.placeBid)
		pr.Post("/{id}/score", productHandler.assignScore)
	})
	router.Route("/me", func(me chi.Router) {
		me.Get("/wins", productHandler.listOwnWins)
		me.Get("/bids", productHandler.listOwnActiveBids)
	})
}

func registerCategoryRoutes(router chi.Router, categoryHandler *CategoryHandler) {
	router.Route("/categories", func(cat chi.Router) {
		cat.Post("/", categoryHandler.addCategory)
		cat.Get("/{id}", categoryHandler.getCategory)
		cat.Post("/{id}/parents", categoryHandler.linkParent)
	})
}
