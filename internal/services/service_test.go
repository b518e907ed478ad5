package services

import (
	"log/slog"
	"os"

	"github.com/fez-github/Doom-Mod-Records/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	err = db.AutoMigrate(&models.User{}, &models.Mod{}, &models.Record{}, &models.Comment{}, &models.AuditLog{})
	if err != nil {
		panic("failed to migrate database: " + err.Error())
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func seedUser(db *gorm.DB, username string) models.User {
	user := models.User{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "not-a-real-hash",
		ImageURL:      models.DefaultImageURL,
		RememberToken: "token-" + username,
	}
	if err := db.Create(&user).Error; err != nil {
		panic("failed to seed user: " + err.Error())
	}
	return user
}

func seedMod(db *gorm.DB, fileID int64, title string) models.Mod {
	mod := models.Mod{
		FileID:   fileID,
		Title:    title,
		Category: "levels",
	}
	if err := db.Create(&mod).Error; err != nil {
		panic("failed to seed mod: " + err.Error())
	}
	return mod
}
