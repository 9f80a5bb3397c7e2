package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Open opens a database on any dialector (tests use the embedded SQLite
// driver). TranslateError is on so uniqueness and check failures surface as
// gorm sentinel errors regardless of dialect.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

// Connect opens the shared Postgres connection from env vars
// (DB_USER, DB_PASSWORD, DB_NAME, DB_HOST, DB_PORT).
func Connect() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, relying on process environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	db, err := Open(postgres.Open(dsn))
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	DB = db
}
