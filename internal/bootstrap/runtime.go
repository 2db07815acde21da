// Package bootstrap wires the runtime dependencies shared by cmd binaries.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/auth"
	"jobboard/internal/cache"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/models"
	"jobboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedPreset, when set, fills an empty database with demo data.
	SeedPreset string
}

// InitRuntime connects to DB and Redis, ensures the development admin and
// optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional; the client is nil when unreachable.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	if opts.SeedPreset != "" {
		if err := seedIfEmpty(db, opts.SeedPreset); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(db *gorm.DB, preset string) error {
	var jobs int64
	if err := db.Model(&models.Job{}).Count(&jobs).Error; err != nil {
		return err
	}
	if jobs > 0 {
		return nil
	}

	seedOpts, err := seed.LookupPreset(preset)
	if err != nil {
		return err
	}
	s, err := seed.NewSeeder(db, seedOpts)
	if err != nil {
		return err
	}
	res, err := s.Run()
	if err != nil {
		return err
	}
	log.Printf("seeded %s preset: %s", preset, res)
	return nil
}

// ensureDevAdmin creates or promotes the configured admin account. It only
// runs in development with DEV_BOOTSTRAP_ADMIN enabled.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	username := strings.TrimSpace(cfg.DevAdminUsername)
	if username == "" {
		username = "admin"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@jobboard.local"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return errors.New("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("username = ?", username).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Username:     username,
				Email:        email,
				PasswordHash: hash,
				Role:         models.RoleAdmin,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&admin).Update("role", models.RoleAdmin).Error
		}
	})
	if err != nil {
		return err
	}

	log.Printf("development admin bootstrap ensured for %s (%s)", username, email)
	return nil
}
