package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vinaykumarh26/careerport-core/internal/admin"
	"github.com/vinaykumarh26/careerport-core/internal/audit"
	"github.com/vinaykumarh26/careerport-core/internal/auth"
	"github.com/vinaykumarh26/careerport-core/internal/companies"
	"github.com/vinaykumarh26/careerport-core/internal/database"
	"github.com/vinaykumarh26/careerport-core/internal/jobs"
	"github.com/vinaykumarh26/careerport-core/internal/seekers"
	"github.com/vinaykumarh26/careerport-core/internal/users"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Info(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db,
		&users.User{},
		&companies.Company{},
		&jobs.Posting{},
		&jobs.Skill{},
		&seekers.Profile{},
	); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	seedAdmin(db, log)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	users.New(r, db)
	auth.New(r, db, log)
	jobs.New(r, db)
	companies.New(r, db, log)
	seekers.New(r, db, log)
	admin.New(r, db, audit.New(log))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// seedAdmin creates the bootstrap admin account from the environment. Admin
// accounts cannot be registered through the API.
func seedAdmin(db *gorm.DB, log *logrus.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing users.User
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		return
	}

	hashed, err := users.HashPassword(password)
	if err != nil {
		log.WithError(err).Error("failed to hash admin password")
		return
	}

	u := users.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashed,
		Role:         users.RoleAdmin,
	}
	if err := db.Create(&u).Error; err != nil {
		log.WithError(err).Error("failed to seed admin account")
		return
	}
	log.WithField("email", email).Info("seeded admin account")
}
