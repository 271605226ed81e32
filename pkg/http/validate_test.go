package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" default:"20" validate:"lte=100"`
}

func bind(t *testing.T, body string) (*sampleRequest, []ValidationError) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	out := &sampleRequest{}
	return out, ReadAndValidateRequest(c, out)
}

func TestReadAndValidateRequest(t *testing.T) {
	out, errs := bind(t, `{"query":"volume"}`)
	require.Nil(t, errs)
	assert.Equal(t, "volume", out.Query)
	assert.Equal(t, 20, out.Limit)
}

func TestReadAndValidateRequest_Required(t *testing.T) {
	_, errs := bind(t, `{}`)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_REQUIRED", errs[0].Code)
	assert.Equal(t, "query", errs[0].Field)
	assert.Equal(t, "Query is required", errs[0].Message)
}

func TestReadAndValidateRequest_Max(t *testing.T) {
	_, errs := bind(t, `{"query":"q","limit":500}`)
	require.Len(t, errs, 1)
	assert.Equal(t, "Limit must be less than or equal to 100", errs[0].Message)
	assert.Equal(t, "100", errs[0].Params["max"])
}

func TestReadAndValidateRequest_Malformed(t *testing.T) {
	_, errs := bind(t, `{"query":`)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_UNKNOWN", errs[0].Code)
}

func TestAppErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, AppErrorResponse(c, MethodNotAllowedError()))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestAppErrorResponse_WrappedCause(t *testing.T) {
	cause := errors.New("upstream 529")
	appErr := InternalError("AI analysis failed").WithError(cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, "AI analysis failed: upstream 529", appErr.Error())

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, AppErrorResponse(c, appErr))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"AI analysis failed"}`, rec.Body.String())
}

func TestAppErrorResponse_BadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	require.NoError(t, AppErrorResponse(c, BadRequestError("Query is required")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Query is required"}`, rec.Body.String())
}

func TestAppErrorResponse_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, AppErrorResponse(c, errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Something went wrong"}`, rec.Body.String())
}
