package main

import (
	"log"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/pkg/kvstore"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func failOnError(err error, msg string) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}

func (app *App) initDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(app.Cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, err
	}

	return db, nil
}

func (app *App) initKVStore() error {
	// Redis is optional; a single-process deployment gets by with the
	// in-memory store.
	if app.Cfg.RedisAddr == "" {
		app.KVStore = kvstore.NewMemory()
		return nil
	}

	kv, err := kvstore.NewRedis(app.Cfg.RedisAddr, app.Cfg.RedisPassword, app.Cfg.RedisDB)
	if err != nil {
		return err
	}
	app.KVStore = kv
	return nil
}
