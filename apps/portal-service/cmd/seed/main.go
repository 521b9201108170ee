package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/service"
	"nightlife-portal/pkg/config"
	"nightlife-portal/pkg/database"
	"nightlife-portal/pkg/logger"
)

// 写入管理员和示例数据，已有数据的集合不会被修改
func main() {
	cfg := config.LoadConfig("portal-seed")
	if err := logger.Init(cfg.App.LogLevel); err != nil {
		panic(err)
	}
	log := logger.GetLogger()

	if err := run(cfg, log); err != nil {
		if errors.Is(err, service.ErrSeedPasswordMissing) {
			log.Error(context.Background(), "No admin account exists, set SEED_ADMIN_PASSWORD to create one")
		} else {
			log.Error(context.Background(), "Seed failed", logger.F("error", err.Error()))
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoDB, err := database.NewMongoDB(ctx, cfg.Database.MongoDB.URI, cfg.Database.MongoDB.DBName)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() { _ = mongoDB.Close() }()

	db := mongoDB.GetDatabase()
	if err := dao.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	svc := service.NewService(service.Options{
		Blogs:    dao.NewBlogDAO(db),
		Events:   dao.NewEventDAO(db),
		Jobs:     dao.NewJobDAO(db),
		Carousel: dao.NewCarouselDAO(db),
		Comments: dao.NewCommentDAO(db),
		Accounts: dao.NewAccountDAO(db),
		Logger:   log,
	})

	report, err := svc.Seed(ctx, service.SeedAdmin{
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		return err
	}
	if report.AdminCreated {
		log.Info(ctx, "Admin account ready, change the password after first login",
			logger.F("email", cfg.Seed.AdminEmail))
	}
	return nil
}
