// Command seed creates the initial admin account so a fresh deployment can
// log in. It is idempotent: an existing active admin email is left alone.
package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/postgres"
	"github.com/fleetora/fleetora/infrastructure/service/password"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@fleetora.local"
	}
	plain := os.Getenv("SEED_ADMIN_PASSWORD")
	if plain == "" {
		log.Fatal("SEED_ADMIN_PASSWORD environment variable is required")
	}

	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	users := postgres.NewUserRepository(db)

	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatalf("failed to check admin account: %v", err)
	}
	if exists {
		log.Printf("admin account %s already exists, nothing to do", email)
		return
	}

	hashed, err := password.NewBcryptService(10).Hash(plain)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := entity.NewUser(uuid.New().String(), "Administrator", email, hashed, "", entity.RoleAdmin)
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin account: %v", err)
	}
	log.Printf("admin account %s created", email)
}
