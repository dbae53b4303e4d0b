package http

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/homease/home-services-backend/internal/provider"
)

type fakeProviderService struct {
	provider.Service

	windows []provider.AvailabilityWindow

	checkedDay    int
	checkedMinute int
	available     bool
}

func (s *fakeProviderService) ListAvailability(_ context.Context, _ string) ([]provider.AvailabilityWindow, error) {
	return s.windows, nil
}

func (s *fakeProviderService) IsAvailableAt(_ context.Context, _ string, dayOfWeek, minuteOfDay int) (bool, error) {
	s.checkedDay = dayOfWeek
	s.checkedMinute = minuteOfDay
	return s.available, nil
}

func newTestRouter(svc provider.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), func(c *gin.Context) {})
	return r
}

const providerID = "a3b5c7d9-1234-4f00-8abc-0123456789ab"

func TestGetAvailability(t *testing.T) {
	t.Run("lists weekly windows", func(t *testing.T) {
		svc := &fakeProviderService{windows: []provider.AvailabilityWindow{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		}}
		router := newTestRouter(svc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/providers/"+providerID+"/availability", nil))

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"windows":[{"day_of_week":1,"start_time":"09:00","end_time":"17:00"}]}`, w.Body.String())
	})

	t.Run("point check answers available", func(t *testing.T) {
		svc := &fakeProviderService{available: true}
		router := newTestRouter(svc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/providers/"+providerID+"/availability?day=2&time=10:30", nil))

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"available":true}`, w.Body.String())
		assert.Equal(t, 2, svc.checkedDay)
		assert.Equal(t, 10*60+30, svc.checkedMinute)
	})

	t.Run("day without time is rejected", func(t *testing.T) {
		router := newTestRouter(&fakeProviderService{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/providers/"+providerID+"/availability?day=2", nil))

		assert.Equal(t, 400, w.Code)
	})

	t.Run("malformed time is rejected", func(t *testing.T) {
		router := newTestRouter(&fakeProviderService{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/providers/"+providerID+"/availability?day=2&time=25:99", nil))

		assert.Equal(t, 400, w.Code)
	})

	t.Run("out of range day is rejected", func(t *testing.T) {
		router := newTestRouter(&fakeProviderService{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/providers/"+providerID+"/availability?day=7&time=10:00", nil))

		assert.Equal(t, 400, w.Code)
	})
}
