package controllers

import (
	"context"
	"net/http"

	"github.com/lmarchal/grocerly-backend/api/responses"
	"github.com/lmarchal/grocerly-backend/pkg/config"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
)

// Pinger is the dependency health surface checked by readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Grocerly-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered dependency answers a
// ping. Nil pingers are skipped so optional dependencies stay optional.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Grocerly-Env", cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable").
					WithDetails(map[string]any{"dependency": name})
				responses.WriteError(r.Context(), logg, w, wrapped)
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
