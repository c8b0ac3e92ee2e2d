package consumer

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/redis"
)

// ProviderCard is the flat result shape the search page renders.
type ProviderCard struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Image       string  `json:"image,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`
	Description string  `json:"description,omitempty"`
	Pricing     string  `json:"pricing,omitempty"`
}

type ratingAggregate struct {
	ProviderID uint
	Avg        float64
	Count      int64
}

// ratingsFor aggregates stored reviews for a set of providers in one query.
func ratingsFor(providerIDs []uint) map[uint]ratingAggregate {
	ratings := make(map[uint]ratingAggregate, len(providerIDs))
	if len(providerIDs) == 0 {
		return ratings
	}

	var rows []ratingAggregate
	db.DB.Model(&models.Review{}).
		Select("provider_id, COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("provider_id IN ?", providerIDs).
		Group("provider_id").
		Scan(&rows)

	for _, row := range rows {
		ratings[row.ProviderID] = row
	}
	return ratings
}

func toCards(providers []models.ServiceProvider) []ProviderCard {
	ids := make([]uint, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}
	ratings := ratingsFor(ids)

	cards := make([]ProviderCard, 0, len(providers))
	for _, p := range providers {
		agg := ratings[p.ID]
		cards = append(cards, ProviderCard{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.PrimaryCategory(),
			Location:    p.LocationLabel(),
			Image:       p.ProfileImage,
			Rating:      agg.Avg,
			ReviewCount: agg.Count,
			Description: p.Description,
			Pricing:     p.PricingModel,
		})
	}
	return cards
}

// SearchProviders matches the query case-insensitively against provider name,
// service types, city and state. No hits is an empty list, not an error.
func SearchProviders(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	pattern := "%" + query + "%"

	var providers []models.ServiceProvider
	if err := db.DB.
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Or("LOWER(city) LIKE LOWER(?)", pattern).
		Or("LOWER(state) LIKE LOWER(?)", pattern).
		Or("LOWER(CAST(service_types AS TEXT)) LIKE LOWER(?)", pattern).
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search providers",
		})
	}

	cards := toCards(providers)

	return c.JSON(fiber.Map{
		"providers": cards,
		"count":     len(cards),
	})
}

// GetProvidersByCategory returns providers whose service types contain the
// given category, optionally narrowed by exact city/state match.
func GetProvidersByCategory(c *fiber.Ctx) error {
	category := c.Params("category")

	// SQL prefilter on the serialized list, exact membership check in Go.
	pattern := "%" + category + "%"
	query := db.DB.Where("LOWER(CAST(service_types AS TEXT)) LIKE LOWER(?)", pattern)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}

	var candidates []models.ServiceProvider
	if err := query.Find(&candidates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch providers by category",
		})
	}

	providers := make([]models.ServiceProvider, 0, len(candidates))
	for _, p := range candidates {
		if p.ServiceTypes.ContainsFold(category) {
			p.Password = ""
			providers = append(providers, p)
		}
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"count":     len(providers),
	})
}

// GetProviderDetails returns a provider profile with its service listings and
// aggregated review stats.
func GetProviderDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.ServiceProvider
	if err := db.DB.Preload("Services").First(&provider, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}
	provider.Password = ""

	stats := reviewStats(provider.ID)

	return c.JSON(fiber.Map{
		"provider":     provider,
		"review_stats": stats,
	})
}

// GetProviderReviews retrieves the most recent reviews for a provider, with
// the reviewer populated. Reviews whose user was deleted come back with a
// zero-value reviewer rather than an error.
func GetProviderReviews(c *fiber.Ctx) error {
	providerID := c.Params("id")

	limit := 5
	if c.Query("limit") != "" {
		if parsed := c.QueryInt("limit"); parsed > 0 {
			limit = parsed
		}
	}

	var reviews []models.Review
	if err := db.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		// Only select non-sensitive fields
		return db.Select("id, name, city, state, created_at")
	}).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	var count int64
	db.DB.Model(&models.Review{}).Where("provider_id = ?", providerID).Count(&count)

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"total":   count,
	})
}

const reviewStatsTTL = 5 * time.Minute

func reviewStatsCacheKey(providerID string) string {
	return "reviewstats:" + providerID
}

func reviewStats(providerID uint) models.ReviewStats {
	stats := models.ReviewStats{ProviderID: providerID}

	db.DB.Model(&models.Review{}).Where("provider_id = ?", providerID).Count(&stats.TotalReviews)

	var avgResult struct {
		AvgRating float64
	}
	db.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg_rating").
		Where("provider_id = ?", providerID).
		Scan(&avgResult)
	stats.AvgRating = avgResult.AvgRating

	var rows []struct {
		Rating int
		Count  int64
	}
	db.DB.Model(&models.Review{}).
		Select("rating, COUNT(*) as count").
		Where("provider_id = ?", providerID).
		Group("rating").
		Scan(&rows)

	for _, row := range rows {
		switch row.Rating {
		case 5:
			stats.Rating5Count = row.Count
		case 4:
			stats.Rating4Count = row.Count
		case 3:
			stats.Rating3Count = row.Count
		case 2:
			stats.Rating2Count = row.Count
		case 1:
			stats.Rating1Count = row.Count
		}
	}
	return stats
}

// GetProviderReviewStats returns the aggregated rating summary, cached in
// Redis for a short window since the search page requests it per card.
func GetProviderReviewStats(c *fiber.Ctx) error {
	providerID := c.Params("id")

	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, reviewStatsCacheKey(providerID)).Result(); err == nil {
			var stats models.ReviewStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return c.JSON(stats)
			}
		}
	}

	var provider models.ServiceProvider
	if err := db.DB.First(&provider, providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	stats := reviewStats(provider.ID)

	if redis.Client != nil {
		if payload, err := json.Marshal(stats); err == nil {
			redis.Client.Set(redis.Ctx, reviewStatsCacheKey(providerID), payload, reviewStatsTTL)
		}
	}

	return c.JSON(stats)
}
