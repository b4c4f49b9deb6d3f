package database

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lanblog/app/models"
	"lanblog/internal/pkg/env"
)

var DB *gorm.DB

// SetupDatabase opens the SQLite file and migrates the schema. It runs
// once at startup, before the server accepts traffic, so handlers never
// have to initialize anything lazily.
func SetupDatabase() {
	dbPath := env.GetEnv("BLOG_DB_PATH", filepath.Join("data", "blog.db"))
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		panic(err)
	}

	DB = db
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB swaps the database handle; used by tests.
func SetDB(db *gorm.DB) {
	DB = db
}
