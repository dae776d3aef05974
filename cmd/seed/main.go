package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"beachride/internal/database"
	"beachride/internal/domain"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "beachride.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (safe order for foreign keys)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM cart_sessions")
	db.Exec("DELETE FROM vehicle_photos")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM password_reset_codes")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	// ================== ADMIN ==================
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	adminHash, _ := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@beachride.example.com",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Site Admin",
	}
	db.Create(&admin)
	log.Printf("Admin created: %s", admin.Email)

	// ================== FLEET ==================
	log.Println("Creating fleet...")
	vehicles := []domain.Vehicle{
		{
			Slug:             "jet-ski-standard",
			Name:             "Jet Ski Standard",
			Type:             domain.VehicleJetSki,
			Description:      "Single-rider jet ski, perfect for a first ride along the shore.",
			PricePerHalfHour: 250000,
			Units:            4,
			Active:           true,
		},
		{
			Slug:             "jet-ski-pro",
			Name:             "Jet Ski Pro",
			Type:             domain.VehicleJetSki,
			Description:      "High-output jet ski for experienced riders.",
			PricePerHalfHour: 350000,
			Units:            2,
			Active:           true,
		},
		{
			Slug:             "atv-classic",
			Name:             "ATV Classic",
			Type:             domain.VehicleATV,
			Description:      "Four-wheeler for the beach track, seats one.",
			PricePerHalfHour: 150000,
			Units:            6,
			Active:           true,
		},
		{
			Slug:             "atv-premium",
			Name:             "ATV Premium",
			Type:             domain.VehicleATV,
			Description:      "Sport ATV with upgraded suspension.",
			PricePerHalfHour: 200000,
			Units:            3,
			Active:           true,
		},
		{
			Slug:             "utv-family",
			Name:             "UTV Family",
			Type:             domain.VehicleUTV,
			Description:      "Side-by-side buggy, seats four. Great for families.",
			PricePerHalfHour: 400000,
			Units:            2,
			Active:           true,
		},
	}
	for i := range vehicles {
		if err := db.Create(&vehicles[i]).Error; err != nil {
			log.Fatalf("seed vehicle %s: %v", vehicles[i].Slug, err)
		}
	}
	log.Printf("Created %d vehicles", len(vehicles))

	// ================== GALLERY ==================
	log.Println("Creating gallery placeholders...")
	photos := []domain.VehiclePhoto{
		{VehicleType: domain.VehicleJetSki, ImageURL: "/static/uploads/seed/jetski-1.jpg", Caption: "Sunset run", DisplayOrder: 1},
		{VehicleType: domain.VehicleJetSki, ImageURL: "/static/uploads/seed/jetski-2.jpg", Caption: "Morning glass", DisplayOrder: 2},
		{VehicleType: domain.VehicleATV, ImageURL: "/static/uploads/seed/atv-1.jpg", Caption: "Dune track", DisplayOrder: 1},
		{VehicleType: domain.VehicleUTV, ImageURL: "/static/uploads/seed/utv-1.jpg", Caption: "Family ride", DisplayOrder: 1},
	}
	for i := range photos {
		db.Create(&photos[i])
	}
	log.Printf("Created %d photos", len(photos))

	log.Println("Seed complete")
}
