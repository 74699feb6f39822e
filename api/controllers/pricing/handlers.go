package pricing

import (
	"net/http"
	"strings"

	"github.com/lmarchal/grocerly-backend/api/responses"
	"github.com/lmarchal/grocerly-backend/api/validators"
	pricingsvc "github.com/lmarchal/grocerly-backend/internal/pricing"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
)

// Estimate handles GET /shopping-lists/{listID}/estimate.
func Estimate(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "listID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.EstimateListCost(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, estimate)
	}
}

// SearchProducts handles GET /products/search with a required q parameter.
func SearchProducts(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": "q"}))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.SearchProducts(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
