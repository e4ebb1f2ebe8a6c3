package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/repositories"
	"github.com/sbilibin2017/foodgram/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// config holds the settings the importer needs.
type config struct {
	LogLevel string

	PGHost     string
	PGPort     int
	PGUser     string
	PGPassword string
	PGDB       string

	RedisHost              string
	RedisPort              int
	RedisDB                int
	RedisPassword          string
	RedisTagCacheExpSecond int
}

func main() {
	configPath, ingredientsPath, tagsPath := parseFlags(os.Args[1:])
	if ingredientsPath == "" && tagsPath == "" {
		log.Fatal("nothing to import: pass -ingredients and/or -tags")
	}

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg, ingredientsPath, tagsPath); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}

// parseFlags returns the config path and the catalog files to import.
func parseFlags(args []string) (configPath, ingredientsPath, tagsPath string) {
	fs := flag.NewFlagSet("importer", flag.ExitOnError)
	fs.StringVar(&configPath, "c", "config.env", "Path to configuration file")
	fs.StringVar(&ingredientsPath, "ingredients", "", "Ingredients file (.csv or .json)")
	fs.StringVar(&tagsPath, "tags", "", "Tags file (.yaml)")
	fs.Parse(args)
	return
}

// parseConfig loads environment variables from a file. Missing keys take
// the same defaults as the server.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "foodgram")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisTagCacheExpSecond, err = getInt("REDIS_TAG_CACHE_EXP_SECOND", "300"); err != nil {
		return
	}
	return
}

// run connects to PostgreSQL and Redis and imports the catalogs. Redis is
// only used to drop the cached tag list; an unreachable Redis is logged.
func run(ctx context.Context, cfg config, ingredientsPath, tagsPath string) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Warnw("Redis unavailable, cached tags expire on their own", "error", err)
	}

	ingredientCache, err := repositories.NewIngredientCacheRepository(1, 0)
	if err != nil {
		return err
	}

	catalog := services.NewCatalogService(
		repositories.NewTagRepository(db, nil),
		repositories.NewTagCacheRepository(rdb, time.Duration(cfg.RedisTagCacheExpSecond)*time.Second),
		repositories.NewIngredientRepository(db, nil),
		ingredientCache,
	)

	return importCatalog(ctx, catalog, ingredientsPath, tagsPath)
}
