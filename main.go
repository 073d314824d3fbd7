package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"panda_pos/api"
	"panda_pos/internal/catalog"
	"panda_pos/internal/sales"
	"panda_pos/internal/users"
)

// getEnv returns an environment variable or the given default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	r := gin.Default()

	if getEnv("PROMETHEUS_ENABLED", "false") == "true" {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	stores := buildStores()
	api.InitRoutesWithStores(r, stores)

	port := getEnv("PORT", "8081")
	if err := r.Run(":" + port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}

// buildStores connects to Postgres when DB_HOST is configured and falls back
// to in-memory storage otherwise.
func buildStores() api.Stores {
	host := os.Getenv("DB_HOST")
	if host == "" {
		log.Println("no DB_HOST configured, using in-memory storage")
		return api.Stores{
			Catalog: catalog.NewLocalStorage(),
			Ledger:  sales.NewLocalLedger(),
			Users:   users.NewLocalStorage(),
		}
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		host,
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "panda_pos"),
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		panic(fmt.Errorf("error opening database: %v", err))
	}
	if err := db.Ping(); err != nil {
		panic(fmt.Errorf("error connecting to database: %v", err))
	}
	log.Printf("connected to database %s", getEnv("DB_NAME", "panda_pos"))

	return api.Stores{
		Catalog: catalog.NewPostgresStore(db),
		Ledger:  sales.NewPostgresLedger(db),
		Users:   users.NewPostgresStorage(db),
	}
}
