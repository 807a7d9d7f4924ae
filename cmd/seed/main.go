package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/linsok/housing-analyzer-sub000/internal/config"
	"github.com/linsok/housing-analyzer-sub000/internal/database"
	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config failed:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// Clean old data in dependency order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM property_views")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:              "admin@housing.kh",
		PasswordHash:       string(adminHash),
		FullName:           "Platform Admin",
		Role:               domain.RoleAdmin,
		VerificationStatus: domain.VerificationVerified,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@housing.kh / admin123")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		Email:              "sophea@housing.kh",
		PasswordHash:       string(ownerHash),
		FullName:           "Sophea Chen",
		Phone:              "+855 12 345 678",
		Role:               domain.RoleOwner,
		VerificationStatus: domain.VerificationVerified,
	}
	db.Create(&owner)

	unverifiedHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	unverifiedOwner := domain.User{
		Email:              "vuthy@housing.kh",
		PasswordHash:       string(unverifiedHash),
		FullName:           "Vuthy Long",
		Phone:              "+855 12 987 654",
		Role:               domain.RoleOwner,
		VerificationStatus: domain.VerificationPending,
	}
	db.Create(&unverifiedOwner)

	var renters []domain.User
	renterNames := []string{"Sok Dara", "Chan Lina", "Kim Vanna"}
	for i, name := range renterNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("renter123"), bcrypt.DefaultCost)
		renter := domain.User{
			Email:              fmt.Sprintf("renter%d@housing.kh", i+1),
			PasswordHash:       string(hash),
			FullName:           name,
			Phone:              fmt.Sprintf("+855 96 111 22%02d", i+10),
			Role:               domain.RoleRenter,
			VerificationStatus: domain.VerificationVerified,
		}
		db.Create(&renter)
		renters = append(renters, renter)
	}
	log.Printf("Created %d renters (password: renter123)", len(renters))

	log.Println("Creating properties...")

	properties := []domain.Property{
		{
			OwnerID: owner.ID, Title: "BKK1 Residence", City: "Phnom Penh",
			Address: "Street 51, BKK1", PropertyType: "apartment",
			Bedrooms: 2, Bathrooms: 1, AreaSqm: 85, RentPrice: 450, DepositAmount: 450,
			Status: domain.PropertyAvailable, VerificationStatus: domain.VerificationVerified,
			BakongAccount: "sophea@aclb", BakongMerchantName: "Sophea Rentals",
		},
		{
			OwnerID: owner.ID, Title: "Riverside Loft", City: "Phnom Penh",
			Address: "Sisowath Quay", PropertyType: "apartment",
			Bedrooms: 1, Bathrooms: 1, AreaSqm: 55, RentPrice: 380,
			Status: domain.PropertyAvailable, VerificationStatus: domain.VerificationVerified,
		},
		{
			OwnerID: owner.ID, Title: "Toul Kork Villa", City: "Phnom Penh",
			Address: "Street 315", PropertyType: "villa",
			Bedrooms: 4, Bathrooms: 3, AreaSqm: 240, RentPrice: 1200, DepositAmount: 2400,
			Status: domain.PropertyAvailable, VerificationStatus: domain.VerificationVerified,
		},
		{
			OwnerID: owner.ID, Title: "Siem Reap Garden House", City: "Siem Reap",
			Address: "Wat Bo Road", PropertyType: "house",
			Bedrooms: 3, Bathrooms: 2, AreaSqm: 150, RentPrice: 600,
			Status: domain.PropertyAvailable, VerificationStatus: domain.VerificationVerified,
		},
		{
			OwnerID: unverifiedOwner.ID, Title: "Draft Studio", City: "Phnom Penh",
			PropertyType: "studio", Bedrooms: 1, Bathrooms: 1, AreaSqm: 30, RentPrice: 220,
			Status: domain.PropertyDraft, VerificationStatus: domain.VerificationPending,
		},
	}
	for i := range properties {
		db.Create(&properties[i])
	}

	log.Println("Creating bookings...")

	start := time.Now().AddDate(0, -3, 0)
	completed := domain.Booking{
		PropertyID: properties[0].ID, RenterID: renters[0].ID,
		BookingType: domain.BookingRental, Status: domain.BookingCompleted,
		StartDate: &start, MonthlyRent: 450, DepositAmount: 450, TotalAmount: 900,
	}
	db.Create(&completed)

	pendingStart := time.Now().AddDate(0, 0, 14)
	pending := domain.Booking{
		PropertyID: properties[1].ID, RenterID: renters[1].ID,
		BookingType: domain.BookingRental, Status: domain.BookingPending,
		StartDate: &pendingStart, MonthlyRent: 380, TotalAmount: 760,
		Message: "Interested in a one-year lease",
	}
	db.Create(&pending)

	visitTime := time.Now().AddDate(0, 0, 3)
	visit := domain.Booking{
		PropertyID: properties[2].ID, RenterID: renters[2].ID,
		BookingType: domain.BookingVisit, Status: domain.BookingPending,
		VisitTime: &visitTime,
	}
	db.Create(&visit)

	log.Println("Creating reviews...")
	db.Create(&domain.Review{
		PropertyID: properties[0].ID, RenterID: renters[0].ID, BookingID: completed.ID,
		Rating: 5, Comment: "Great location, responsive owner.",
	})

	log.Println("Seed complete.")
}
