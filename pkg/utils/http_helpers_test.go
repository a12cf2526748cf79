package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "branch-manager/pkg/errors"
)

func TestParseFilterFromQuery(t *testing.T) {
	values, err := url.ParseQuery("search=Khujand&sort[code]=DESC&sort[name]=up&page=2")
	require.NoError(t, err)

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, "Khujand", filter.Search)
	assert.Equal(t, map[string]string{"code": "desc"}, filter.Sort, "Неверное направление отбрасывается")
	assert.Equal(t, 2, filter.Page)
}

func TestParseFilterFromQuery_BadPage(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"page": {"-1"}})
	assert.Equal(t, 0, filter.Page)

	filter = ParseFilterFromQuery(url.Values{"page": {"abc"}})
	assert.Equal(t, 0, filter.Page)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorResponse(t *testing.T) {
	type sample struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(sample{})

	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "http error", err: apperrors.NewHttpError(http.StatusTeapot, "чайник", nil, nil), code: http.StatusTeapot},
		{name: "not found", err: fmt.Errorf("поиск: %w", apperrors.ErrNotFound), code: http.StatusNotFound},
		{name: "confirmation", err: apperrors.ErrConfirmationRequired, code: http.StatusConflict},
		{name: "validation", err: validationErr, code: http.StatusBadRequest},
		{name: "unknown", err: fmt.Errorf("что-то сломалось"), code: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, ErrorResponse(c, tc.err, zap.NewNop()))
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, false, decodeBody(t, rec)["status"])
		})
	}
}

func TestSuccessResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SuccessResponse(c, map[string]int{"n": 1}, "ок", http.StatusCreated))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["status"])
	assert.Equal(t, "ок", body["message"])
	assert.Equal(t, map[string]interface{}{"n": float64(1)}, body["body"])
}
