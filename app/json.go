package bookstore

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kmarval/bookstore-inventory/core"
	"github.com/kmarval/bookstore-inventory/pkg/router"
)

// decodeJson decodes a request body. Type mismatches and garbled bodies are
// client errors, not internal ones.
func decodeJson(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return router.NewJsonError(http.StatusBadRequest, "Invalid datatype for field: "+typeErr.Field)
		}
		return router.NewJsonError(http.StatusBadRequest, "Please provide valid data types in the request body.")
	}
	return nil
}

func writeJson(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// validateBody runs struct validation on a decoded payload and reports all
// failing fields at once.
func validateBody(v any) error {
	if err := validate.Struct(v); err != nil {
		return router.NewValidationError(http.StatusBadRequest, FormatFieldErrors(err))
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, router.NewJsonError(http.StatusBadRequest, "Invalid identifier in request path")
	}
	return id, nil
}

func pageParams(r *http.Request) (page, size int, err error) {
	q := r.URL.Query()
	page, size = 0, core.DefaultPageSize
	if v := q.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 0 {
			return 0, 0, router.NewJsonError(http.StatusBadRequest, "Invalid page parameter")
		}
	}
	if v := q.Get("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size <= 0 {
			return 0, 0, router.NewJsonError(http.StatusBadRequest, "Invalid size parameter")
		}
	}
	return page, size, nil
}

// storeError translates domain store failures into canonical client errors.
// Anything unrecognized is passed through and surfaces as an internal error.
func storeError(err error) error {
	var notFound *core.NotFoundError
	if errors.As(err, &notFound) {
		return router.NewJsonError(http.StatusNotFound, notFound.Error())
	}

	var missingID *core.MissingIdentifierError
	if errors.As(err, &missingID) {
		return router.NewJsonError(http.StatusBadRequest, missingID.Error())
	}

	var outOfBounds *core.PageOutOfBoundsError
	if errors.As(err, &outOfBounds) {
		return router.NewJsonError(http.StatusBadRequest, outOfBounds.Error())
	}

	if core.IsConstraintError(err) {
		return router.NewJsonError(http.StatusBadRequest, "Data integrity violation occurred.")
	}

	return err
}
