package shopping

import (
	"net/http"

	"github.com/lmarchal/grocerly-backend/api/responses"
	"github.com/lmarchal/grocerly-backend/api/validators"
	shoppingsvc "github.com/lmarchal/grocerly-backend/internal/shopping"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
)

// CreateList handles POST /shopping-lists.
func CreateList(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CreateListRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateList(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// Generate handles POST /shopping-lists/generate. It aggregates the selected
// recipes into one consolidated list.
func Generate(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload GenerateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Generate(r.Context(), toGenerateInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// Get handles GET /shopping-lists/{listID}.
func Get(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "listID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ByCategory handles GET /shopping-lists/{listID}/by-category.
func ByCategory(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "listID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		grouped, err := svc.OrganizeByCategory(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, grouped)
	}
}

// SetChecked handles PATCH /shopping-lists/{listID}/items/{ingredientID}.
// The response reports whether any item row changed.
func SetChecked(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, err := validators.ParseUUIDParam(r, "listID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ingredientID, err := validators.ParseUUIDParam(r, "ingredientID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload CheckItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetChecked(r.Context(), listID, ingredientID, payload.Checked)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": updated})
	}
}

// List handles GET /shopping-lists with skip/limit paging.
func List(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// Rename handles PUT /shopping-lists/{listID}.
func Rename(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "listID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload RenameListRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Rename(r.Context(), id, payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// Delete handles DELETE /shopping-lists/{listID}.
func Delete(svc shoppingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "listID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
