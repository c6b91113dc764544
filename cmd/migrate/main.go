package main

import (
	"context"
	"log"
	"time"

	"github.com/catalogo-poli/shop/internal/config"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := config.OpenDB(ctx, cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migration completed")
}
