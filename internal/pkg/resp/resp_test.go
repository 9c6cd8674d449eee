package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dmchat/internal/pkg/errs"
)

func TestRespondSuccess(t *testing.T) {
	req := require.New(t)
	rec := httptest.NewRecorder()

	RespondSuccess(rec, httptest.NewRequest(http.MethodGet, "/", nil), map[string]int{"count": 2})

	req.Equal(http.StatusOK, rec.Code)
	req.Equal("application/json", rec.Header().Get("Content-Type"))
	req.JSONEq(`{"code":0,"message":"success","data":{"count":2}}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	req := require.New(t)
	rec := httptest.NewRecorder()

	RespondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errs.NewError(errs.ErrRateLimitExceeded))

	req.Equal(http.StatusTooManyRequests, rec.Code)
	var body JSONResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Equal(errs.ErrRateLimitExceeded, body.Code)
	req.Nil(body.Data)
}

func TestRespondError_NilFallsBackToUnknown(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
