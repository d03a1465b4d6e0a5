package main

import (
	"log"
	"net/http"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/pkg/conf"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/pkg/kvstore"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type App struct {
	DB      *gorm.DB
	R       *chi.Mux
	KVStore kvstore.KVStore
	Cfg     *conf.Config
}

func main() {
	cfg, err := conf.Load(".")
	failOnError(err, "Failed to load configuration")

	app := &App{Cfg: cfg}

	db, err := app.initDB()
	failOnError(err, "Failed to connect to database")
	app.DB = db

	failOnError(app.initKVStore(), "Failed to connect to key-value store")

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	r.Use(app.requestLogger)

	app.R = r
	app.initHandlers()

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		panic(err)
	}
}
