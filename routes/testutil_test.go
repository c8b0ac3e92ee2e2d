package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/middleware"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/routes"
)

// setupTest wires a fresh in-memory database and a Fiber app with the full
// route surface registered.
func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.ServiceProvider{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
	))
	db.DB = gdb

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupConsumerRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupAdminRoutes(app)
	return app
}

func hash(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func createUser(t *testing.T, name, email string) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash(t, "password123"),
		City:     "Mumbai",
		State:    "Maharashtra",
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createProvider(t *testing.T, name, email string, serviceTypes ...string) models.ServiceProvider {
	t.Helper()
	provider := models.ServiceProvider{
		Name:         name,
		Email:        email,
		Password:     hash(t, "password123"),
		ServiceTypes: serviceTypes,
		City:         "Mumbai",
		State:        "Maharashtra",
		PricingModel: "500/hr",
	}
	require.NoError(t, db.DB.Create(&provider).Error)
	return provider
}

func createAdmin(t *testing.T, email string) models.Admin {
	t.Helper()
	admin := models.Admin{
		Name:     "Test Admin",
		Email:    email,
		Password: hash(t, "admin123"),
	}
	require.NoError(t, db.DB.Create(&admin).Error)
	return admin
}

func tokenFor(t *testing.T, id uint, email, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
	require.NoError(t, err)
	return signed
}

// doJSON performs a request against the app and returns the response.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// futureSlot returns tomorrow at 10:00 local time, inside the default
// fixtures' availability window when one is set.
func futureSlot() time.Time {
	tomorrow := time.Now().AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.Local)
}
