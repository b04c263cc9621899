package postgres

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"revisor/internal/models"
)

var db *gorm.DB

func InitDB() error {
	var err error
	err = godotenv.Load()
	if err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	sslMode := os.Getenv("SSL_MODE")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s search_path=public",
		dbHost, dbUser, dbPassword, dbName, dbPort, sslMode)

	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return Migrate(db)
}

// Migrate creates or updates the schema for every core model.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Folder{},
		&models.File{},
		&models.VersionRecord{},
		&models.VersionApproval{},
		&models.RollbackRecord{},
		&models.Invitation{},
	)
}

func GetDB() *gorm.DB {
	return db
}

// Use swaps the active handle. Tests use it to point the repositories at an
// in-memory database.
func Use(g *gorm.DB) {
	db = g
}
