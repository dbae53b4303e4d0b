package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindCreateBooking(t *testing.T, body string) (CreateBookingRequest, error) {
	t.Helper()
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var dto CreateBookingRequest
	err := binding.JSON.Bind(req, &dto)
	return dto, err
}

func TestCreateBookingRequestBinding(t *testing.T) {
	t.Run("binds date_time", func(t *testing.T) {
		dto, err := bindCreateBooking(t, `{
			"service_id": "3f2d9a34-0f43-4a8e-9f2a-8c2f6f6f2a10",
			"date_time": "2030-05-01T10:30:00Z",
			"notes": "ring the bell"
		}`)
		require.NoError(t, err)
		assert.Equal(t, "3f2d9a34-0f43-4a8e-9f2a-8c2f6f6f2a10", dto.ServiceID)
		assert.Equal(t, time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC), dto.StartTime)
		assert.Equal(t, "ring the bell", dto.Notes)
	})

	t.Run("date_time is required", func(t *testing.T) {
		_, err := bindCreateBooking(t, `{"service_id": "3f2d9a34-0f43-4a8e-9f2a-8c2f6f6f2a10"}`)
		assert.Error(t, err)
	})

	t.Run("service_id must be a uuid", func(t *testing.T) {
		_, err := bindCreateBooking(t, `{"service_id": "nope", "date_time": "2030-05-01T10:30:00Z"}`)
		assert.Error(t, err)
	})
}
