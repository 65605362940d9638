// cmd/seedadmin/main.go — Crea/restablece la cuenta de administrador.
// Uso: go run cmd/seedadmin/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"barveredales/internal/config"
	"barveredales/internal/credential"
	"barveredales/internal/infra"
	"barveredales/internal/model"
	"barveredales/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	ctx := context.Background()
	codec := credential.New(cfg.CredentialScheme)

	slot, err := openSlot(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage error")
	}
	st, err := store.New(ctx, slot, codec)
	if err != nil {
		log.Fatal().Err(err).Msg("store error")
	}

	digest, err := codec.Hash(password)
	if err != nil {
		log.Fatal().Err(err).Msg("hash error")
	}

	err = st.Mutate(ctx, func(doc *model.Document) error {
		now := time.Now()
		if u := doc.UserByEmail("admin@veredales.com"); u != nil {
			u.Password = digest
			u.IsActive = true
			u.LoginAttempts = 0
			u.LastAttempt = nil
			u.UpdatedAt = &now
			return nil
		}
		doc.Users = append(doc.Users, model.User{
			ID:        doc.NextUserID(),
			Nombres:   "Admin",
			Apellidos: "Veredales",
			Edad:      25,
			Email:     "admin@veredales.com",
			Password:  digest,
			Role:      model.RoleAdmin,
			CreatedAt: now,
			IsActive:  true,
		})
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed error")
	}

	fmt.Printf("✅ Cuenta 'admin@veredales.com' creada/actualizada con password '%s'\n", password)
}

func openSlot(cfg *config.Config) (store.Slot, error) {
	switch cfg.StorageDriver {
	case "memory":
		return store.NewMemorySlot(), nil
	case "redis":
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return store.NewRedisSlot(rdb, cfg.StorageSlot), nil
	case "sql":
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewSQLSlot(db, cfg.StorageSlot)
	default:
		return store.NewFileSlot(cfg.StoragePath, cfg.StorageSlot), nil
	}
}
