package planning

import (
	"net/http"
	"strings"

	"github.com/lmarchal/grocerly-backend/api/responses"
	"github.com/lmarchal/grocerly-backend/api/validators"
	planningsvc "github.com/lmarchal/grocerly-backend/internal/planning"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
)

// Suggest handles GET /planning/weekly-meal-plan. Query parameters num_days,
// meals_per_day and season tune the plan; omitted values use the weekly
// lunch-and-dinner defaults.
func Suggest(svc planningsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		numDays, err := validators.ParseQueryInt(r, "num_days", 0, 0, 31)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mealsPerDay, err := validators.ParseQueryInt(r, "meals_per_day", 0, 0, 6)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := planningsvc.SuggestInput{NumDays: numDays, MealsPerDay: mealsPerDay}
		if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
			season, err := enums.ParseSeason(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid season"))
				return
			}
			input.Season = &season
		}

		plan, err := svc.Suggest(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}
