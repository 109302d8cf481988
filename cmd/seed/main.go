package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"parvarish/internal/config"
	"parvarish/internal/database"
	"parvarish/internal/domain"
	"parvarish/internal/pkg/logger"
	"parvarish/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "password123"

func main() {
	_ = godotenv.Load()
	if err := run(context.Background()); err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel, true)

	provider := database.NewProvider(cfg.DatabaseURL)
	defer func() {
		if err := provider.Close(); err != nil {
			log.Error().Err(err).Msg("database close failed")
		}
	}()

	db, err := provider.DB(ctx)
	if err != nil {
		return err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Cleanup old data, bookings first
	log.Info().Msg("cleaning old data")
	for _, table := range []string{"bookings", "daycares", "parents"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	parentRepo := repository.NewParentRepository(db)
	daycareRepo := repository.NewDaycareRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// ================== PARENTS ==================
	parents := make([]*domain.Parent, 0, 2)
	for i, email := range []string{"aigerim@example.com", "daniyar@example.com"} {
		p := &domain.Parent{
			Name:         fmt.Sprintf("Parent %d", i+1),
			Email:        email,
			PasswordHash: string(hash),
			Phone:        fmt.Sprintf("+7 701 555 01%02d", i),
		}
		if err := parentRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("create parent %s: %w", email, err)
		}
		parents = append(parents, p)
	}

	// ================== DAYCARES ==================
	daycareSeeds := []struct {
		name, email, city string
		approved          bool
	}{
		{"Little Stars", "stars@example.com", "Almaty", true},
		{"Sunny Steps", "sunny@example.com", "Astana", true},
		{"Happy Nest", "nest@example.com", "Almaty", false},
	}
	daycares := make([]*domain.Daycare, 0, len(daycareSeeds))
	for i, s := range daycareSeeds {
		d := &domain.Daycare{
			Name:           s.name,
			Email:          s.email,
			PasswordHash:   string(hash),
			Phone:          fmt.Sprintf("+7 727 555 02%02d", i),
			Address:        fmt.Sprintf("%d Abay Ave", 10+i),
			City:           s.city,
			State:          "KZ",
			ZipCode:        "050000",
			Capacity:       12 + 4*i,
			Description:    "Play based early learning",
			OperatingHours: "08:00-18:00",
			AgeRange:       "1-6",
			LicensingInfo:  fmt.Sprintf("LIC-%04d", 100+i),
			IsApproved:     s.approved,
		}
		if err := daycareRepo.Create(ctx, d); err != nil {
			return fmt.Errorf("create daycare %s: %w", s.email, err)
		}
		daycares = append(daycares, d)
	}

	// ================== BOOKINGS ==================
	start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 7)
	bookingSeeds := []struct {
		parent  *domain.Parent
		daycare *domain.Daycare
		child   string
		age     int
		status  domain.BookingStatus
	}{
		{parents[0], daycares[0], "Alikhan", 3, domain.BookingPending},
		{parents[0], daycares[1], "Alikhan", 3, domain.BookingApproved},
		{parents[1], daycares[0], "Madina", 4, domain.BookingRejected},
	}
	for _, s := range bookingSeeds {
		b := &domain.Booking{
			ParentID:      s.parent.ID,
			DaycareID:     s.daycare.ID,
			Child:         domain.Child{Name: s.child, Age: s.age},
			StartDate:     start,
			EndDate:       start.AddDate(0, 3, 0),
			Schedule:      domain.Schedules[0].Value,
			Status:        s.status,
			PaymentStatus: domain.PaymentPending,
		}
		if err := bookingRepo.Create(ctx, b); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
	}

	log.Info().
		Int("parents", len(parents)).
		Int("daycares", len(daycares)).
		Int("bookings", len(bookingSeeds)).
		Str("password", demoPassword).
		Msg("seed completed")
	return nil
}
