package controllers

import (
	"context"
	"net/http"

	"github.com/crestviewems/supplyline-backend/api/responses"
	"github.com/crestviewems/supplyline-backend/api/validators"
	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/google/uuid"
)

// The three reference tables (categories, units, compartments) share one
// controller shape: list, create by name, delete by id.

func referenceList[T any](list func(context.Context) ([]T, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := list(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func referenceCreate[T any](create func(context.Context, catalog.CreateReferenceInput) (T, error), live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body catalog.CreateReferenceInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshStatics(r.Context(), live, logg)
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func referenceDelete(param string, del func(context.Context, uuid.UUID) error, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, param)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := del(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshStatics(r.Context(), live, logg)
		responses.WriteSuccess(w, map[string]any{"id": id, "deleted": true})
	}
}

func CategoriesList(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return referenceList(svc.ListCategories, logg)
}

func CategoryCreate(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return referenceCreate(svc.CreateCategory, live, logg)
}

func CategoryDelete(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return referenceDelete("categoryId", svc.DeleteCategory, live, logg)
}

func UnitsList(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return referenceList(svc.ListUnits, logg)
}

func UnitCreate(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return referenceCreate(svc.CreateUnit, live, logg)
}

func UnitDelete(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return referenceDelete("unitId", svc.DeleteUnit, live, logg)
}

func CompartmentsList(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return referenceList(svc.ListCompartments, logg)
}

func CompartmentCreate(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return referenceCreate(svc.CreateCompartment, live, logg)
}

func CompartmentDelete(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return referenceDelete("compartmentId", svc.DeleteCompartment, live, logg)
}
