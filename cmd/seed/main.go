// Command seed creates the initial superadmin account so the portal has a
// working email+password login after a fresh deploy.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/config"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/infrastructure/auth"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/infrastructure/database"
	"github.com/chauhan-varun/NiramayaPravasi-sub001/internal/infrastructure/repositories"
)

func main() {
	email := flag.String("email", "", "superadmin email")
	password := flag.String("password", "", "superadmin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: seed -email <email> -password <password>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db)

	if existing, err := userRepo.FindByEmail(ctx, *email); err == nil && existing != nil {
		log.Printf("superadmin %s already exists (id=%d)", *email, existing.ID)
		return
	}

	hash, err := auth.NewPasswordService().Hash(*password)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	user := &domain.User{
		Email:        *email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		Status:       domain.StatusActive,
		FullName:     "Super Admin",
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("create: %v", err)
	}

	log.Printf("superadmin %s created (id=%d)", *email, user.ID)
}
