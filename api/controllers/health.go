package controllers

import (
	"net/http"

	"github.com/crestviewems/supplyline-backend/api/responses"
	"github.com/crestviewems/supplyline-backend/pkg/config"
	"github.com/crestviewems/supplyline-backend/pkg/db"
	pkgerrors "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/crestviewems/supplyline-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Supplyline-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only while the database, redis and the live
// view feed are all healthy.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, live LiveView) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Supplyline-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = err.Error()
				healthy = false
			} else {
				checks["database"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}
		if live != nil {
			if err := live.Err(); err != nil {
				checks["live_view"] = err.Error()
				healthy = false
			} else {
				checks["live_view"] = "ok"
			}
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
