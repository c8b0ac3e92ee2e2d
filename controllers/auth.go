package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/middleware"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/redis"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func issueToken(id uint, email, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTSecret())
}

// Register handles customer sign-up
func Register(c *fiber.Ctx) error {
	user := new(models.User)

	if err := c.BodyParser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Validate input
	if user.Email == "" || user.Password == "" || user.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	// Check if user already exists
	email := strings.ToLower(strings.TrimSpace(user.Email))
	var existingUser models.User
	if db.DB.Where("email = ?", email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}
	user.Password = string(hashedPassword)

	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	// Remove password from response
	user.Password = ""

	return c.Status(fiber.StatusCreated).JSON(user)
}

// RegisterProvider handles service provider sign-up
func RegisterProvider(c *fiber.Ctx) error {
	provider := new(models.ServiceProvider)

	if err := c.BodyParser(provider); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if provider.Email == "" || provider.Password == "" || provider.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if err := provider.Availability.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	email := strings.ToLower(strings.TrimSpace(provider.Email))
	var existing models.ServiceProvider
	if db.DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Provider with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(provider.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}
	provider.Password = string(hashedPassword)

	// New providers wait for admin approval before being surfaced as verified.
	provider.Approved = false

	if err := db.DB.Create(&provider).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create provider",
		})
	}

	provider.Password = ""

	return c.Status(fiber.StatusCreated).JSON(provider)
}

// Login authenticates a user, provider or admin by email and password and
// returns a role-tagged account object with access and refresh tokens.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var (
		id     uint
		name   string
		role   string
		hashed string
	)

	var admin models.Admin
	var provider models.ServiceProvider
	var user models.User
	switch {
	case db.DB.Where("email = ?", email).First(&admin).RowsAffected > 0:
		id, name, role, hashed = admin.ID, admin.Name, middleware.RoleAdmin, admin.Password
	case db.DB.Where("email = ?", email).First(&provider).RowsAffected > 0:
		id, name, role, hashed = provider.ID, provider.Name, middleware.RoleProvider, provider.Password
	case db.DB.Where("email = ?", email).First(&user).RowsAffected > 0:
		id, name, role, hashed = user.ID, user.Name, middleware.RoleUser, user.Password
	default:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	tokenString, err := issueToken(id, email, role, accessTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	refreshTokenString, err := issueToken(id, email, role, refreshTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":    id,
			"name":  name,
			"email": email,
			"role":  role,
		},
	})
}

// GetProfile returns the authenticated caller's account object.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	switch role {
	case middleware.RoleAdmin:
		var admin models.Admin
		if err := db.DB.First(&admin, userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Admin not found"})
		}
		admin.Password = ""
		return c.JSON(fiber.Map{"role": role, "account": admin})
	case middleware.RoleProvider:
		var provider models.ServiceProvider
		if err := db.DB.First(&provider, userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Provider not found"})
		}
		provider.Password = ""
		return c.JSON(fiber.Map{"role": role, "account": provider})
	default:
		var user models.User
		if err := db.DB.First(&user, userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		user.Password = ""
		return c.JSON(fiber.Map{"role": role, "account": user})
	}
}

// Logout revokes the presented token for the remainder of its lifetime.
func Logout(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				ttl := time.Until(time.Unix(int64(exp), 0))
				if err := redis.BlacklistToken(token.Raw, ttl); err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "Failed to revoke token",
					})
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}
	if redis.IsBlacklisted(refreshRequest.RefreshToken) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	id, _ := claims["id"].(float64)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	tokenString, err := issueToken(uint(id), email, role, accessTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}
