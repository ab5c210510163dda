package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/db"
	"reviewhub/internal/logger"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// defaultTemplates are the reply templates owners can pick from out of the box.
var defaultTemplates = []model.ResponseTemplate{
	{Text: "Thank you so much for the kind words! We hope to see you again soon.", SentimentScore: 5},
	{Text: "Thanks for visiting and for taking the time to share your experience.", SentimentScore: 3},
	{Text: "Thank you for your feedback. We are always working to improve.", SentimentScore: 0},
	{Text: "We are sorry your visit did not meet expectations. Please reach out so we can make it right.", SentimentScore: -3},
	{Text: "We sincerely apologise. This is not the standard we hold ourselves to, and we are looking into it.", SentimentScore: -5},
}

type adminSeed struct {
	Name     string
	Email    string
	Password string
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	log.Info("starting seed script")

	admin := adminSeed{
		Name:     getEnv("SEED_ADMIN_NAME", "Administrator"),
		Email:    strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
	if admin.Email == "" || admin.Password == "" {
		log.Error("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
		os.Exit(1)
	}

	// Connect to database
	gormDB, err := db.Open(db.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	created, err := seedAdmin(ctx, repository.NewUserRepository(gormDB), admin)
	if err != nil {
		log.Error("failed to seed admin", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("admin seeded", slog.String("email", admin.Email), slog.Bool("created", created))

	added, err := seedTemplates(ctx, repository.NewResponseTemplateRepository(gormDB), defaultTemplates)
	if err != nil {
		log.Error("failed to seed templates", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("seed completed",
		slog.Int("templates_created", added),
		slog.Int("templates_existing", len(defaultTemplates)-added),
	)
}

// seedAdmin creates the admin account or brings an existing one up to date.
// A user who currently owns a restaurant is never promoted.
func seedAdmin(ctx context.Context, repo repository.UserRepository, seed adminSeed) (created bool, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	existing, err := repo.FindByEmail(ctx, seed.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("error checking user %s: %w", seed.Email, err)
	}

	if existing != nil {
		if existing.Role == model.RoleOwner {
			return false, fmt.Errorf("user %s owns a restaurant and cannot be made admin", seed.Email)
		}
		existing.Name = seed.Name
		existing.PasswordHash = string(hash)
		existing.Role = model.RoleAdmin
		existing.Enabled = true
		if err := repo.Update(ctx, existing); err != nil {
			return false, fmt.Errorf("error updating user %s: %w", seed.Email, err)
		}
		return false, nil
	}

	user := &model.User{
		Name:         seed.Name,
		Email:        seed.Email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Enabled:      true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("error creating user %s: %w", seed.Email, err)
	}
	return true, nil
}

// seedTemplates inserts templates whose text is not stored yet.
func seedTemplates(ctx context.Context, repo repository.ResponseTemplateRepository, templates []model.ResponseTemplate) (int, error) {
	added := 0
	for _, tmpl := range templates {
		_, err := repo.FindByText(ctx, tmpl.Text)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return added, fmt.Errorf("error checking template %q: %w", tmpl.Text, err)
		}

		tmpl := tmpl
		if err := repo.Create(ctx, &tmpl); err != nil {
			return added, fmt.Errorf("error creating template %q: %w", tmpl.Text, err)
		}
		added++
	}
	return added, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
