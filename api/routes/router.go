package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lmarchal/grocerly-backend/api/controllers"
	ingredientcontrollers "github.com/lmarchal/grocerly-backend/api/controllers/ingredients"
	planningcontrollers "github.com/lmarchal/grocerly-backend/api/controllers/planning"
	pricingcontrollers "github.com/lmarchal/grocerly-backend/api/controllers/pricing"
	recipecontrollers "github.com/lmarchal/grocerly-backend/api/controllers/recipes"
	shoppingcontrollers "github.com/lmarchal/grocerly-backend/api/controllers/shopping"
	"github.com/lmarchal/grocerly-backend/api/middleware"
	ingredientsvc "github.com/lmarchal/grocerly-backend/internal/ingredients"
	planningsvc "github.com/lmarchal/grocerly-backend/internal/planning"
	pricingsvc "github.com/lmarchal/grocerly-backend/internal/pricing"
	recipesvc "github.com/lmarchal/grocerly-backend/internal/recipes"
	shoppingsvc "github.com/lmarchal/grocerly-backend/internal/shopping"
	"github.com/lmarchal/grocerly-backend/pkg/config"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
	"github.com/lmarchal/grocerly-backend/pkg/metrics"
)

// Deps bundles everything the router mounts. Readiness pings every entry in
// Pingers; a nil Registry disables the metrics endpoint.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry
	Pingers  map[string]controllers.Pinger

	Ingredients ingredientsvc.Service
	Recipes     recipesvc.Service
	Shopping    shoppingsvc.Service
	Planning    planningsvc.Service
	Pricing     pricingsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins),
	)
	if deps.Registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(deps.Registry)))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/ingredients", func(r chi.Router) {
			r.Post("/", ingredientcontrollers.Create(deps.Ingredients, logg))
			r.Get("/", ingredientcontrollers.List(deps.Ingredients, logg))
			r.Get("/{ingredientID}", ingredientcontrollers.Get(deps.Ingredients, logg))
			r.Put("/{ingredientID}", ingredientcontrollers.Update(deps.Ingredients, logg))
			r.Delete("/{ingredientID}", ingredientcontrollers.Delete(deps.Ingredients, logg))
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Post("/", recipecontrollers.Create(deps.Recipes, logg))
			r.Get("/", recipecontrollers.List(deps.Recipes, logg))
			r.Get("/{recipeID}", recipecontrollers.Get(deps.Recipes, logg))
			r.Put("/{recipeID}", recipecontrollers.Update(deps.Recipes, logg))
			r.Delete("/{recipeID}", recipecontrollers.Delete(deps.Recipes, logg))
		})

		r.Route("/shopping-lists", func(r chi.Router) {
			r.Post("/", shoppingcontrollers.CreateList(deps.Shopping, logg))
			r.Post("/generate", shoppingcontrollers.Generate(deps.Shopping, logg))
			r.Get("/", shoppingcontrollers.List(deps.Shopping, logg))
			r.Get("/{listID}", shoppingcontrollers.Get(deps.Shopping, logg))
			r.Put("/{listID}", shoppingcontrollers.Rename(deps.Shopping, logg))
			r.Delete("/{listID}", shoppingcontrollers.Delete(deps.Shopping, logg))
			r.Get("/{listID}/by-category", shoppingcontrollers.ByCategory(deps.Shopping, logg))
			r.Patch("/{listID}/items/{ingredientID}", shoppingcontrollers.SetChecked(deps.Shopping, logg))
			r.Get("/{listID}/estimate", pricingcontrollers.Estimate(deps.Pricing, logg))
		})

		r.Get("/planning/weekly-meal-plan", planningcontrollers.Suggest(deps.Planning, logg))
		r.Get("/products/search", pricingcontrollers.SearchProducts(deps.Pricing, logg))
	})

	return r
}
