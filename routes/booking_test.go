package routes_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/middleware"
	"github.com/quickfixhub/server/models"
)

func createBooking(t *testing.T, user models.User, provider models.ServiceProvider, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		UserID:         user.ID,
		ProviderID:     provider.ID,
		ScheduledTime:  futureSlot(),
		ServiceDetails: "Leaking kitchen tap",
		Status:         status,
	}
	require.NoError(t, db.DB.Create(&booking).Error)
	return booking
}

func TestCreateBooking(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	token := tokenFor(t, user.ID, user.Email, middleware.RoleUser)

	resp := doJSON(t, app, http.MethodPost, "/bookings/", token, map[string]interface{}{
		"provider_id":     provider.ID,
		"scheduled_time":  futureSlot().Format(time.RFC3339),
		"service_details": "Leaking kitchen tap",
		// Spoofed fields are overridden by the handler.
		"user_id": 9999,
		"status":  "completed",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Booking
	decode(t, resp, &created)
	assert.Equal(t, user.ID, created.UserID, "booking belongs to the authenticated caller")
	assert.Equal(t, models.StatusPending, created.Status, "new bookings always start pending")
	assert.Equal(t, models.PaymentPending, created.PaymentStatus)
	assert.NotEmpty(t, created.Reference)

	// Visible in the customer's own list.
	listResp := doJSON(t, app, http.MethodGet, "/bookings/", token, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Bookings []models.Booking `json:"bookings"`
		Count    int              `json:"count"`
	}
	decode(t, listResp, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Bookings[0].ID)
	assert.Equal(t, provider.ID, list.Bookings[0].Provider.ID)

	// And in the provider's job list, with a display location.
	providerToken := tokenFor(t, provider.ID, provider.Email, middleware.RoleProvider)
	jobsResp := doJSON(t, app, http.MethodGet, "/provider/bookings", providerToken, nil)
	require.Equal(t, http.StatusOK, jobsResp.StatusCode)
	var jobs struct {
		Bookings []struct {
			ID       uint   `json:"ID"`
			Location string `json:"location"`
		} `json:"bookings"`
		Count int `json:"count"`
	}
	decode(t, jobsResp, &jobs)
	require.Equal(t, 1, jobs.Count)
	assert.Equal(t, created.ID, jobs.Bookings[0].ID)
	assert.Equal(t, "Mumbai, Maharashtra", jobs.Bookings[0].Location)
}

func TestCreateBookingValidation(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	token := tokenFor(t, user.ID, user.Email, middleware.RoleUser)

	t.Run("missing fields", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/bookings/", token, map[string]interface{}{
			"provider_id": provider.ID,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("past time", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/bookings/", token, map[string]interface{}{
			"provider_id":     provider.ID,
			"scheduled_time":  time.Now().Add(-time.Hour).Format(time.RFC3339),
			"service_details": "Leaking kitchen tap",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown provider", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/bookings/", token, map[string]interface{}{
			"provider_id":     9999,
			"scheduled_time":  futureSlot().Format(time.RFC3339),
			"service_details": "Leaking kitchen tap",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("no token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/bookings/", "", map[string]interface{}{
			"provider_id": provider.ID,
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("provider role cannot book", func(t *testing.T) {
		providerToken := tokenFor(t, provider.ID, provider.Email, middleware.RoleProvider)
		resp := doJSON(t, app, http.MethodPost, "/bookings/", providerToken, map[string]interface{}{
			"provider_id":     provider.ID,
			"scheduled_time":  futureSlot().Format(time.RFC3339),
			"service_details": "Leaking kitchen tap",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestCreateBookingOutsideAvailability(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")

	// Narrow the window so tomorrow 10:00 falls outside it on every weekday.
	availability := models.Availability{}
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		availability[day] = [2]string{"12:00", "13:00"}
	}
	require.NoError(t, db.DB.Model(&provider).Update("availability", availability).Error)

	token := tokenFor(t, user.ID, user.Email, middleware.RoleUser)
	resp := doJSON(t, app, http.MethodPost, "/bookings/", token, map[string]interface{}{
		"provider_id":     provider.ID,
		"scheduled_time":  futureSlot().Format(time.RFC3339),
		"service_details": "Leaking kitchen tap",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateBookingServiceOwnership(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	other := createProvider(t, "BrightSpark Electricals", "spark@example.com", "Electrical")

	service := models.Service{ProviderID: other.ID, Title: "Wiring check", Category: "Electrical", Price: 500}
	require.NoError(t, db.DB.Create(&service).Error)

	token := tokenFor(t, user.ID, user.Email, middleware.RoleUser)
	resp := doJSON(t, app, http.MethodPost, "/bookings/", token, map[string]interface{}{
		"provider_id":     provider.ID,
		"service_id":      service.ID,
		"scheduled_time":  futureSlot().Format(time.RFC3339),
		"service_details": "Leaking kitchen tap",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "a service listed by another provider cannot be booked")
}

func TestBookingLifecycle(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	booking := createBooking(t, user, provider, models.StatusPending)

	providerToken := tokenFor(t, provider.ID, provider.Email, middleware.RoleProvider)
	userToken := tokenFor(t, user.ID, user.Email, middleware.RoleUser)
	path := fmt.Sprintf("/bookings/%d/status", booking.ID)

	// Provider confirms the pending request.
	resp := doJSON(t, app, http.MethodPatch, path, providerToken, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var confirmed models.Booking
	decode(t, resp, &confirmed)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt, "confirmation is stamped")

	// Repeating the same status is an idempotent no-op.
	resp = doJSON(t, app, http.MethodPatch, path, providerToken, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The customer may cancel a confirmed booking.
	resp = doJSON(t, app, http.MethodPatch, path, userToken, map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cancelled models.Booking
	decode(t, resp, &cancelled)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	// Cancelled is terminal.
	resp = doJSON(t, app, http.MethodPatch, path, providerToken, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBookingStatusAuthorization(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	stranger := createUser(t, "Someone Else", "stranger@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	booking := createBooking(t, user, provider, models.StatusPending)
	path := fmt.Sprintf("/bookings/%d/status", booking.ID)

	t.Run("customer cannot confirm", func(t *testing.T) {
		token := tokenFor(t, user.ID, user.Email, middleware.RoleUser)
		resp := doJSON(t, app, http.MethodPatch, path, token, map[string]string{"status": "confirmed"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("stranger is not a party", func(t *testing.T) {
		token := tokenFor(t, stranger.ID, stranger.Email, middleware.RoleUser)
		resp := doJSON(t, app, http.MethodPatch, path, token, map[string]string{"status": "cancelled"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown status", func(t *testing.T) {
		token := tokenFor(t, provider.ID, provider.Email, middleware.RoleProvider)
		resp := doJSON(t, app, http.MethodPatch, path, token, map[string]string{"status": "done"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown booking", func(t *testing.T) {
		token := tokenFor(t, provider.ID, provider.Email, middleware.RoleProvider)
		resp := doJSON(t, app, http.MethodPatch, "/bookings/9999/status", token, map[string]string{"status": "confirmed"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("admin may drive any legal transition", func(t *testing.T) {
		admin := createAdmin(t, "admin@example.com")
		token := tokenFor(t, admin.ID, admin.Email, middleware.RoleAdmin)
		resp := doJSON(t, app, http.MethodPatch, path, token, map[string]string{"status": "declined"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestBookingPayment(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	booking := createBooking(t, user, provider, models.StatusConfirmed)

	token := tokenFor(t, provider.ID, provider.Email, middleware.RoleProvider)
	path := fmt.Sprintf("/bookings/%d/status", booking.ID)

	// Paid before completion is rejected.
	resp := doJSON(t, app, http.MethodPatch, path, token, map[string]string{"payment_status": "paid"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Complete the job, then mark it paid in one request.
	resp = doJSON(t, app, http.MethodPatch, path, token, map[string]string{
		"status":         "completed",
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Booking
	decode(t, resp, &updated)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	require.NotNil(t, updated.CompletedAt)
}

func TestProviderJobEndpoints(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	other := createProvider(t, "BrightSpark Electricals", "spark@example.com", "Electrical")
	token := tokenFor(t, provider.ID, provider.Email, middleware.RoleProvider)

	t.Run("accept then complete", func(t *testing.T) {
		booking := createBooking(t, user, provider, models.StatusPending)

		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/provider/bookings/%d/accept", booking.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/provider/bookings/%d/complete", booking.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var done models.Booking
		decode(t, resp, &done)
		assert.Equal(t, models.StatusCompleted, done.Status)
	})

	t.Run("decline", func(t *testing.T) {
		booking := createBooking(t, user, provider, models.StatusPending)

		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/provider/bookings/%d/decline", booking.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var declined models.Booking
		decode(t, resp, &declined)
		assert.Equal(t, models.StatusDeclined, declined.Status)
	})

	t.Run("complete before accept", func(t *testing.T) {
		booking := createBooking(t, user, provider, models.StatusPending)

		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/provider/bookings/%d/complete", booking.ID), token, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("another provider's job", func(t *testing.T) {
		booking := createBooking(t, user, provider, models.StatusPending)

		otherToken := tokenFor(t, other.ID, other.Email, middleware.RoleProvider)
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/provider/bookings/%d/accept", booking.ID), otherToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetBookingPartyGate(t *testing.T) {
	app := setupTest(t)
	user := createUser(t, "Ravi Kumar", "user@example.com")
	stranger := createUser(t, "Someone Else", "stranger@example.com")
	provider := createProvider(t, "Acme Plumbing", "acme@example.com", "Plumbing")
	booking := createBooking(t, user, provider, models.StatusPending)
	path := fmt.Sprintf("/bookings/%d", booking.ID)

	userToken := tokenFor(t, user.ID, user.Email, middleware.RoleUser)
	resp := doJSON(t, app, http.MethodGet, path, userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Booking
	decode(t, resp, &fetched)
	assert.Equal(t, booking.ID, fetched.ID)
	assert.Equal(t, provider.Name, fetched.Provider.Name)
	assert.Empty(t, fetched.Provider.Password)

	strangerToken := tokenFor(t, stranger.ID, stranger.Email, middleware.RoleUser)
	resp = doJSON(t, app, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
