package controllers

import (
	"net/http"

	"github.com/crestviewems/supplyline-backend/api/middleware"
	"github.com/crestviewems/supplyline-backend/api/responses"
	"github.com/crestviewems/supplyline-backend/api/validators"
	"github.com/crestviewems/supplyline-backend/internal/users"
	pkgerrors "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
)

// AuthLogin signs a user in. Accounts on the allowed domain are provisioned
// on their first successful login.
func AuthLogin(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body users.LoginInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the caller's redis session; the JWT dies with it.
func AuthLogout(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := svc.Logout(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "signed out"})
	}
}
