// Command seed populates the database with demo data: a batch of regular
// users, one superuser, and ten catalog items. One-off utility, safe to run
// against an empty database only.
package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shop-service/common/logger"
	"shop-service/config"
	"shop-service/database"
	"shop-service/models"
	"shop-service/repository"
)

const (
	regularUserCount = 1
	itemCount        = 10
	seedPassword     = "new_password"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.Connect(cfg, logger.Log)
	if err != nil {
		logger.Log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	logger.Log.Info("Seeding database in progress...")

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	if err := createUsers(ctx, users, regularUserCount, false); err != nil {
		logger.Log.Fatal("Seeding users failed", zap.Error(err))
	}
	if err := createUsers(ctx, users, 1, true); err != nil {
		logger.Log.Fatal("Seeding superuser failed", zap.Error(err))
	}
	if err := createItems(db, itemCount); err != nil {
		logger.Log.Fatal("Seeding items failed", zap.Error(err))
	}

	logger.Log.Info("Seeding is finished successfully!")
}

func createUsers(ctx context.Context, users repository.UserRepository, cnt int, superuser bool) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	prefix := "auto_generated"
	if superuser {
		prefix = "superuser"
	}

	for i := 1; i <= cnt; i++ {
		user := &models.User{
			Username:    fmt.Sprintf("%s_%d", prefix, i),
			Password:    string(hashed),
			IsActive:    true,
			IsSuperuser: superuser,
			IsStaff:     superuser,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

func createItems(db *gorm.DB, cnt int) error {
	items := make([]models.Item, 0, cnt)
	for i := 1; i <= cnt; i++ {
		items = append(items, models.Item{
			Name:  fmt.Sprintf("Item #%d", i),
			Price: i * 10,
		})
	}
	return db.Create(&items).Error
}
