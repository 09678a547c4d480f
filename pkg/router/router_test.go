package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ErrorMapper(t *testing.T) {
	router := New()

	tcs := []struct {
		err    error
		mapper ErrorMapper
		exp    Error
	}{
		{
			err: errors.New("custom error"),
			mapper: func(err error) Error {
				return JsonError{
					Status: 400,
					Reason: err.Error(),
				}
			},
			exp: JsonError{
				Status: 400,
				Reason: "custom error",
			},
		},
		{
			err:    errors.New("random error"),
			mapper: nil,
			exp:    router.defaultError,
		},
		{
			err: JsonError{
				Status: 400,
				Reason: "API Error",
			},
			mapper: nil,
			exp: JsonError{
				Status: 400,
				Reason: "API Error",
			},
		},
	}

	for _, tc := range tcs {
		if tc.mapper != nil {
			router.RegisterErrorMapper(tc.err, tc.mapper)
		}
		got := router.mapError(tc.err)
		assert.Equal(t, tc.exp, got)
	}
}

func Test_HandlerErrorResponse(t *testing.T) {
	router := New()

	router.Get("/fail", func(w http.ResponseWriter, r *http.Request) error {
		return NewJsonError(http.StatusForbidden, "Unauthorized to view this resource")
	})
	router.Get("/boom", func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("db exploded")
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":403,"error_reason":"Unauthorized to view this resource"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"error_reason":"Internal server error"}`, rec.Body.String())
}
