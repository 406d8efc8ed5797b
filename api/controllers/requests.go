package controllers

import (
	"net/http"
	"time"

	"github.com/crestviewems/supplyline-backend/api/middleware"
	"github.com/crestviewems/supplyline-backend/api/responses"
	"github.com/crestviewems/supplyline-backend/api/validators"
	"github.com/crestviewems/supplyline-backend/internal/requests"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	pkgerrors "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
)

const (
	viewItem   = "item"
	viewVendor = "vendor"

	// History views default to the trailing quarter.
	defaultHistoryDays = 90
	maxHistoryDays     = 3650
)

// RequestsView serves both ways of looking at the request list. The vendor
// view is the live procurement board; the item view is a flat sorted list and
// also carries the history filters.
func RequestsView(live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := validators.QueryString(r, "view", viewItem)
		switch view {
		case viewVendor:
			responses.WriteSuccess(w, live.Board())
		case viewItem:
			filter, err := viewFilterFromQuery(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			entries := requests.ListByItem(live.Index(), live.Requests(), filter)
			responses.WriteSuccess(w, entries)
		default:
			err := pkgerrors.New(pkgerrors.CodeValidation, "view must be item or vendor")
			responses.WriteError(r.Context(), logg, w, err)
		}
	}
}

func viewFilterFromQuery(r *http.Request) (requests.ViewFilter, error) {
	filter := requests.ViewFilter{}

	history, err := validators.QueryBool(r, "history", false)
	if err != nil {
		return filter, err
	}
	filter.History = history

	if raw := validators.QueryString(r, "status", ""); raw != "" {
		status, err := enums.ParseRequestStatus(raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		filter.Status = &status
	}

	if history {
		window, err := validators.QueryDays(r, "window", defaultHistoryDays, maxHistoryDays)
		if err != nil {
			return filter, err
		}
		since := time.Now().Add(-window)
		filter.Since = &since
	}
	return filter, nil
}

func RequestCreate(svc *requests.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body requests.CreateRequestInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), middleware.UserEmailFromContext(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshRequests(r.Context(), live, logg)
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func RequestUpdate(svc *requests.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body requests.UpdateRequestInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshRequests(r.Context(), live, logg)
		responses.WriteSuccess(w, updated)
	}
}

func RequestUpdateStatus(svc *requests.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body requests.UpdateStatusInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshRequests(r.Context(), live, logg)
		responses.WriteSuccess(w, updated)
	}
}

func RequestSetOverride(svc *requests.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body requests.SetOverrideInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetOverride(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshRequests(r.Context(), live, logg)
		responses.WriteSuccess(w, updated)
	}
}

func RequestDelete(svc *requests.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshRequests(r.Context(), live, logg)
		responses.WriteSuccess(w, map[string]any{"id": id, "deleted": true})
	}
}

// OrderBatchBuild prices a set of requests into one vendor order, optionally
// marking them Ordered in the same transaction.
func OrderBatchBuild(svc *requests.Service, live LiveView, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body requests.OrderBatchInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		batch, err := svc.BuildOrderBatch(r.Context(), live.Index(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if batch.Ordered {
			refreshRequests(r.Context(), live, logg)
		}
		responses.WriteSuccess(w, batch)
	}
}
