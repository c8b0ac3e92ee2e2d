package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

// StartCronJobs initializes and starts the scheduler for booking reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for bookings in the next hour
	_, err := c.AddFunc("* * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders checks for confirmed bookings and sends reminders
func sendBookingReminders() {
	var bookings []models.Booking
	now := time.Now()
	// Look for bookings starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("User").Preload("Provider").
		Where("status = ? AND scheduled_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if booking.User.Email == "" {
			continue
		}
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.User.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: %s visit at %s",
		booking.Provider.Name, booking.ScheduledTime.Format("15:04"))
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your booking scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Scheduled:</strong> %s</li>
			<li><strong>Details:</strong> %s</li>
		</ul>
		<p>If you need to cancel, do so from your bookings page as soon as possible.</p>
		<p>— QuickFixHub</p>
	`, booking.User.Name, booking.Provider.Name,
		booking.ScheduledTime.Format("2006-01-02 15:04"),
		booking.ServiceDetails)

	return utils.SendEmail(booking.User.Email, subject, body)
}
