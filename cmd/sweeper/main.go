package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"beachride/internal/config"
	"beachride/internal/database"
	"beachride/internal/repository"
)

// The sweeper runs from cron: it cancels pending bookings whose rental
// day has passed and prunes expired auth artifacts and old health probes.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	bookings := repository.NewBookingRepository(db)
	refreshTokens := repository.NewRefreshTokenRepository(db)
	resetCodes := repository.NewResetCodeRepository(db)
	health := repository.NewHealthRepository(db)

	today := time.Now().Format("2006-01-02")
	n, err := bookings.CancelPendingBefore(ctx, today, "expired: rental date passed without confirmation")
	if err != nil {
		log.Fatalf("sweep bookings: %v", err)
	}
	log.Printf("cancelled %d expired pending bookings", n)

	n, err = refreshTokens.DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("sweep refresh tokens: %v", err)
	}
	log.Printf("deleted %d expired refresh tokens", n)

	n, err = resetCodes.DeleteStale(ctx)
	if err != nil {
		log.Fatalf("sweep reset codes: %v", err)
	}
	log.Printf("deleted %d stale reset codes", n)

	n, err = health.DeleteProbesBefore(ctx, time.Now().Add(-7*24*time.Hour))
	if err != nil {
		log.Fatalf("sweep health probes: %v", err)
	}
	log.Printf("deleted %d old health probes", n)
}
