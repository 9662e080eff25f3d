package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/gin-gonic/gin"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing record",
			err:        utils.ErrorRecordNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "record not found",
		},
		{
			name:       "request failure keeps its message",
			err:        utils.BadRequest("nothing to collect for 7-credit"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "nothing to collect for 7-credit",
		},
		{
			name:       "infrastructure failure is generic",
			err:        errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "something went wrong",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body %q does not contain %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRespondErrorHidesInfrastructureDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("Error 1146: Table 'depot.orders' doesn't exist"))

	if strings.Contains(w.Body.String(), "1146") {
		t.Errorf("response leaked backend error detail: %q", w.Body.String())
	}
}
