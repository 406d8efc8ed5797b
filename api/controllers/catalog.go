package controllers

import (
	"net/http"

	"github.com/crestviewems/supplyline-backend/api/responses"
	"github.com/crestviewems/supplyline-backend/api/validators"
	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
)

func CatalogItemsList(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCatalogItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func CatalogItemCreate(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body catalog.CreateCatalogItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateCatalogItem(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshStatics(r.Context(), live, logg)
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func CatalogItemUpdate(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body catalog.UpdateCatalogItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateCatalogItem(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshStatics(r.Context(), live, logg)
		responses.WriteSuccess(w, updated)
	}
}

type setActiveBody struct {
	Active *bool `json:"active" validate:"required"`
}

// CatalogItemSetActive archives or restores an item. Rows are never deleted;
// history keeps pointing at them.
func CatalogItemSetActive(svc *catalog.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setActiveBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetCatalogItemActive(r.Context(), id, *body.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshStatics(r.Context(), live, logg)
		responses.WriteSuccess(w, map[string]any{"id": id, "active": *body.Active})
	}
}
