// controller/audit_controller_test.go
package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dev-mohitbeniwal/subexpiry/audit"
	"github.com/dev-mohitbeniwal/subexpiry/controller"
	"github.com/dev-mohitbeniwal/subexpiry/router"
	mock_service "github.com/dev-mohitbeniwal/subexpiry/test/service_mock"
)

func TestAuditController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuditService := mock_service.NewMockService(ctrl)
	controllers := controller.InitializeControllers(mock_service.NewMockIExpirationService(ctrl), mockAuditService)
	r := router.SetupRouter(controllers, 100, 100, nil)

	from := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	t.Run("QueryExpirations_Success", func(t *testing.T) {
		mockAuditService.EXPECT().
			QueryExpirations(gomock.Any(), from, to, "bob").
			Return([]audit.ExpirationLog{{FBID: "bob", Action: audit.ActionSubscriptionExpired, Sentinel: "E"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/expirations?from=2026-10-18T00:00:00Z&to=2026-10-19T00:00:00Z&fbid=bob", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Expirations []audit.ExpirationLog `json:"expirations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Expirations, 1)
		assert.Equal(t, "bob", body.Expirations[0].FBID)
	})

	t.Run("QueryExpirations_DefaultWindow", func(t *testing.T) {
		mockAuditService.EXPECT().
			QueryExpirations(gomock.Any(), gomock.Any(), gomock.Any(), "").
			DoAndReturn(func(_ context.Context, gotFrom, gotTo time.Time, _ string) ([]audit.ExpirationLog, error) {
				assert.Equal(t, 24*time.Hour, gotTo.Sub(gotFrom))
				assert.WithinDuration(t, time.Now(), gotTo, 5*time.Second)
				return []audit.ExpirationLog{}, nil
			})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/expirations", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"expirations":[]}`, w.Body.String())
	})

	t.Run("QueryExpirations_InvalidFrom", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/expirations?from=yesterday", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid 'from' parameter"}`, w.Body.String())
	})

	t.Run("QueryExpirations_FromAfterTo", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/expirations?from=2026-10-19T00:00:00Z&to=2026-10-18T00:00:00Z", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("QueryExpirations_Failure", func(t *testing.T) {
		mockAuditService.EXPECT().
			QueryExpirations(gomock.Any(), from, to, "").
			Return(nil, errors.New("es down"))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/expirations?from=2026-10-18T00:00:00Z&to=2026-10-19T00:00:00Z", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to query expirations"}`, w.Body.String())
	})
}
