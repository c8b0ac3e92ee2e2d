package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quickfixhub/server/models"
)

// Seed inserts deterministic sample data in dependency order:
// admin → users → providers → services → bookings → reviews.
// Rows keyed by email are skipped when they already exist, so the
// command can be re-run safely.
func Seed() {
	if DB == nil {
		Init()
	}

	seedAdmin()
	users := seedUsers()
	providers := seedProviders()
	services := seedServices(providers)
	bookings := seedBookings(users, providers, services)
	seedReviews(users, providers)

	log.Printf("✅ Seed complete: %d users, %d providers, %d services, %d bookings",
		len(users), len(providers), len(services), len(bookings))
}

func hashPassword(plain string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}
	return string(hashed)
}

func seedAdmin() {
	var existing models.Admin
	if DB.Where("email = ?", "admin@quickfixhub.com").First(&existing).RowsAffected > 0 {
		return
	}

	admin := models.Admin{
		Name:     "QuickFixHub Admin",
		Email:    "admin@quickfixhub.com",
		Password: hashPassword("admin-change-me"),
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin: ", err)
	}
}

func seedUsers() []models.User {
	users := []models.User{
		{Name: "Ravi Sharma", Email: "ravi@example.com", PhoneNumber: "9876543210", City: "Mumbai", State: "Maharashtra"},
		{Name: "Priya Patel", Email: "priya@example.com", PhoneNumber: "9876500001", City: "Ahmedabad", State: "Gujarat"},
		{Name: "Arjun Mehta", Email: "arjun@example.com", City: "Pune", State: "Maharashtra"},
	}

	for i := range users {
		var existing models.User
		if DB.Where("email = ?", users[i].Email).First(&existing).RowsAffected > 0 {
			users[i] = existing
			continue
		}
		users[i].Password = hashPassword("password123")
		if err := DB.Create(&users[i]).Error; err != nil {
			log.Fatal("Failed to seed user: ", err)
		}
	}
	return users
}

func seedProviders() []models.ServiceProvider {
	weekdays := models.Availability{
		"Mon": {"09:00", "18:00"},
		"Tue": {"09:00", "18:00"},
		"Wed": {"09:00", "18:00"},
		"Thu": {"09:00", "18:00"},
		"Fri": {"09:00", "18:00"},
		"Sat": {"10:00", "14:00"},
	}

	providers := []models.ServiceProvider{
		{
			Name:         "Acme Plumbing",
			Email:        "contact@acmeplumbing.com",
			PhoneNumber:  "9820012345",
			Description:  "Residential plumbing, leak detection and pipe replacement.",
			PricingModel: "500/hr",
			Availability: weekdays,
			ServiceTypes: models.StringList{"Plumbing"},
			City:         "Mumbai",
			State:        "Maharashtra",
			Approved:     true,
		},
		{
			Name:         "BrightSpark Electricals",
			Email:        "hello@brightspark.com",
			PhoneNumber:  "9820054321",
			Description:  "Licensed electricians for wiring, fittings and repairs.",
			PricingModel: "700/hr",
			Availability: weekdays,
			ServiceTypes: models.StringList{"Electrical", "Appliance Repair"},
			City:         "Pune",
			State:        "Maharashtra",
			Approved:     true,
		},
		{
			Name:         "SparkleClean Services",
			Email:        "book@sparkleclean.com",
			Description:  "Deep cleaning for homes and offices.",
			PricingModel: "1500/visit",
			ServiceTypes: models.StringList{"Cleaning"},
			City:         "Ahmedabad",
			State:        "Gujarat",
		},
	}

	for i := range providers {
		var existing models.ServiceProvider
		if DB.Where("email = ?", providers[i].Email).First(&existing).RowsAffected > 0 {
			providers[i] = existing
			continue
		}
		providers[i].Password = hashPassword("password123")
		if err := DB.Create(&providers[i]).Error; err != nil {
			log.Fatal("Failed to seed provider: ", err)
		}
	}
	return providers
}

func seedServices(providers []models.ServiceProvider) []models.Service {
	if len(providers) < 3 {
		return nil
	}

	services := []models.Service{
		{ProviderID: providers[0].ID, Title: "Leak Repair", Category: "Plumbing", Description: "Fix dripping taps and leaking pipes.", Price: 500, Location: "Mumbai"},
		{ProviderID: providers[0].ID, Title: "Bathroom Fitting", Category: "Plumbing", Price: 2500, Location: "Mumbai"},
		{ProviderID: providers[1].ID, Title: "House Wiring", Category: "Electrical", Price: 3000, Location: "Pune"},
		{ProviderID: providers[2].ID, Title: "Full Home Deep Clean", Category: "Cleaning", Price: 1500, Location: "Ahmedabad"},
	}

	for i := range services {
		var existing models.Service
		if DB.Where("provider_id = ? AND title = ?", services[i].ProviderID, services[i].Title).
			First(&existing).RowsAffected > 0 {
			services[i] = existing
			continue
		}
		if err := DB.Create(&services[i]).Error; err != nil {
			log.Fatal("Failed to seed service: ", err)
		}
	}
	return services
}

func seedBookings(users []models.User, providers []models.ServiceProvider, services []models.Service) []models.Booking {
	if len(users) < 2 || len(providers) < 2 || len(services) < 3 {
		return nil
	}

	var count int64
	DB.Model(&models.Booking{}).Count(&count)
	if count > 0 {
		return nil
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	nextWeek := time.Now().AddDate(0, 0, 7)

	bookings := []models.Booking{
		{
			UserID:         users[0].ID,
			ProviderID:     providers[0].ID,
			ServiceID:      &services[0].ID,
			ScheduledTime:  time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.Local),
			ServiceDetails: "Kitchen sink is leaking under the counter.",
		},
		{
			UserID:         users[1].ID,
			ProviderID:     providers[1].ID,
			ScheduledTime:  time.Date(nextWeek.Year(), nextWeek.Month(), nextWeek.Day(), 14, 0, 0, 0, time.Local),
			ServiceDetails: "Replace two ceiling fan regulators.",
		},
	}

	for i := range bookings {
		if err := DB.Create(&bookings[i]).Error; err != nil {
			log.Fatal("Failed to seed booking: ", err)
		}
	}
	return bookings
}

func seedReviews(users []models.User, providers []models.ServiceProvider) {
	if len(users) < 2 || len(providers) < 2 {
		return
	}

	var count int64
	DB.Model(&models.Review{}).Count(&count)
	if count > 0 {
		return
	}

	reviews := []models.Review{
		{ProviderID: providers[0].ID, UserID: users[0].ID, Rating: 5, Comment: "Arrived on time, fixed the leak in an hour."},
		{ProviderID: providers[0].ID, UserID: users[1].ID, Rating: 4, Comment: "Good work, slightly pricey."},
		{ProviderID: providers[1].ID, UserID: users[0].ID, Rating: 5, Comment: "Very professional wiring job."},
	}

	for i := range reviews {
		if err := DB.Create(&reviews[i]).Error; err != nil {
			log.Fatal("Failed to seed review: ", err)
		}
	}
}
