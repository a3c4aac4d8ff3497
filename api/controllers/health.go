package controllers

import (
	"net/http"

	"github.com/sustainsports/storefront-backend/api/responses"
	"github.com/sustainsports/storefront-backend/pkg/config"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
	"github.com/sustainsports/storefront-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SustainSports-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the persistence substrate answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, store kv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SustainSports-Env", cfg.App.Env)

		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStorageUnavailable, "store not configured"))
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "store ping failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
