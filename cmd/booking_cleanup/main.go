package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"kayexpress/internal/database"
	"kayexpress/internal/repository"
)

// Cancels pending bookings whose payment deadline has long passed and
// returns their seats to the trip. Meant to run from cron; the grace
// period keeps it clear of webhooks still settling at the gateway.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "kayexpress.db"
	}

	grace := time.Hour
	if v := os.Getenv("BOOKING_EXPIRY_GRACE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid BOOKING_EXPIRY_GRACE: %v", err)
		}
		grace = d
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	now := time.Now()
	bookings := repository.NewBookingRepository(db)
	n, err := bookings.ExpireStale(context.Background(), now.Add(-grace), "payment deadline passed", now)
	if err != nil {
		log.Fatalf("booking cleanup failed: %v", err)
	}
	log.Printf("booking cleanup completed: cancelled=%d", n)
}
