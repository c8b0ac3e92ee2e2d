package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"

	"github.com/quickfixhub/server/models"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// NotifyBookingCreated emails both parties about a new booking. Delivery is
// best-effort: failures are logged and never fail the request.
func NotifyBookingCreated(booking *models.Booking, user *models.User, provider *models.ServiceProvider) {
	when := booking.ScheduledTime.Format("2006-01-02 15:04")

	userBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking request has been placed.</p>
		<ul>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Scheduled:</strong> %s</li>
			<li><strong>Details:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>We'll let you know when the provider responds.</p>
		<p>— QuickFixHub</p>
	`, user.Name, provider.Name, when, booking.ServiceDetails, booking.Status)
	if err := SendEmail(user.Email, "Booking request placed", userBody); err != nil {
		log.Printf("Failed to send booking email to user %d: %v", user.ID, err)
	}

	providerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new booking request.</p>
		<ul>
			<li><strong>Customer:</strong> %s</li>
			<li><strong>Scheduled:</strong> %s</li>
			<li><strong>Details:</strong> %s</li>
		</ul>
		<p>Accept or decline it from your jobs dashboard.</p>
		<p>— QuickFixHub</p>
	`, provider.Name, user.Name, when, booking.ServiceDetails)
	if err := SendEmail(provider.Email, "New booking request", providerBody); err != nil {
		log.Printf("Failed to send booking email to provider %d: %v", provider.ID, err)
	}
}

// NotifyBookingStatus emails the customer when a booking changes state.
func NotifyBookingStatus(booking *models.Booking, user *models.User) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking scheduled for %s is now <strong>%s</strong>.</p>
		<p>— QuickFixHub</p>
	`, user.Name, booking.ScheduledTime.Format("2006-01-02 15:04"), booking.Status)
	if err := SendEmail(user.Email, "Booking update", body); err != nil {
		log.Printf("Failed to send status email for booking %d: %v", booking.ID, err)
	}
}
