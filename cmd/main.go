package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/foodgram/internal/facades"
	"github.com/sbilibin2017/foodgram/internal/handlers"
	"github.com/sbilibin2017/foodgram/internal/jwt"
	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/middlewares"
	"github.com/sbilibin2017/foodgram/internal/repositories"
	"github.com/sbilibin2017/foodgram/internal/services"
	"github.com/sbilibin2017/foodgram/internal/tracing"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string
	PageSize int

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost              string
	RedisPort              int
	RedisDB                int
	RedisPassword          string
	RedisPoolSize          int
	RedisMinIdleConns      int
	RedisTagCacheExpSecond int

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExpSecond int

	MediaRoot string
	MediaURL  string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	IngredientCacheSize      int
	IngredientCacheExpSecond int

	OtelEnabled     bool
	OtelEndpoint    string
	OtelServiceName string
}

// @title foodgram API
// @version 1.0.0
// @description Recipe sharing service: recipes, favorites, shopping lists and subscriptions
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application configuration. Missing keys take their defaults.
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

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	if cfg.PageSize, err = getInt("APP_PAGE_SIZE", "6"); err != nil {
		return
	}

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "foodgram")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisTagCacheExpSecond, err = getInt("REDIS_TAG_CACHE_EXP_SECOND", "300"); err != nil {
		return
	}

	// Kafka config
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "foodgram.events")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "86400"); err != nil {
		return
	}

	// Image storage config
	cfg.MediaRoot = getEnv("MEDIA_ROOT", "media")
	cfg.MediaURL = strings.TrimRight(getEnv("MEDIA_URL", "/media"), "/")
	cfg.S3Bucket = getEnv("S3_BUCKET", "")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.S3PublicURL = strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/")

	if cfg.IngredientCacheSize, err = getInt("INGREDIENT_CACHE_SIZE", "256"); err != nil {
		return
	}
	if cfg.IngredientCacheExpSecond, err = getInt("INGREDIENT_CACHE_EXP_SECOND", "300"); err != nil {
		return
	}

	// Tracing config
	if cfg.OtelEnabled, err = strconv.ParseBool(getEnv("OTEL_ENABLED", "false")); err != nil {
		err = fmt.Errorf("OTEL_ENABLED: %w", err)
		return
	}
	cfg.OtelEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	cfg.OtelServiceName = getEnv("OTEL_SERVICE_NAME", "foodgram")

	return
}

// api groups the services behind the HTTP handlers.
type api struct {
	registerer     handlers.Registerer
	loginer        handlers.Loginer
	logouter       handlers.Logouter
	passwordSetter handlers.PasswordSetter
	users          handlers.UserReader
	recipeReader   handlers.RecipeReader
	recipeWriter   handlers.RecipeWriter
	favorites      handlers.RecipeListToggler
	shoppingCart   handlers.RecipeListToggler
	shoppingList   handlers.ShoppingListDownloader
	tags           handlers.TagReader
	ingredients    handlers.IngredientReader
	subscriptions  handlers.Subscriber
}

// newRouter mounts the API under /api. Unsafe requests run in a database
// transaction; anonymous callers are limited to safe methods outside of
// registration and login.
func newRouter(
	db *sqlx.DB,
	tokener middlewares.Tokener,
	revoked middlewares.RevocationChecker,
	a api,
	pageSize int,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokener, revoked))
		r.Use(middlewares.TxMiddleware(db))

		r.Post("/auth/token/login/", handlers.NewLoginHandler(a.loginer))
		r.With(middlewares.RequireAuth).Post("/auth/token/logout/", handlers.NewLogoutHandler(a.logouter))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", handlers.NewRegisterHandler(a.registerer))
			r.Get("/", handlers.NewListUsersHandler(a.users, pageSize))
			r.Get("/{id}/", handlers.NewGetUserHandler(a.users))

			r.Group(func(r chi.Router) {
				r.Use(middlewares.RequireAuth)
				r.Get("/me/", handlers.NewMeHandler(a.users))
				r.Post("/set_password/", handlers.NewSetPasswordHandler(a.passwordSetter))
				r.Get("/subscriptions/", handlers.NewListSubscriptionsHandler(a.subscriptions, pageSize))
				r.Post("/{id}/subscribe/", handlers.NewSubscribeHandler(a.subscriptions))
				r.Delete("/{id}/subscribe/", handlers.NewUnsubscribeHandler(a.subscriptions))
			})
		})

		r.Get("/tags/", handlers.NewListTagsHandler(a.tags))
		r.Get("/tags/{id}/", handlers.NewGetTagHandler(a.tags))
		r.Get("/ingredients/", handlers.NewListIngredientsHandler(a.ingredients))
		r.Get("/ingredients/{id}/", handlers.NewGetIngredientHandler(a.ingredients))

		r.Route("/recipes", func(r chi.Router) {
			r.Use(middlewares.AuthorOrReadOnly)

			r.Get("/", handlers.NewListRecipesHandler(a.recipeReader, pageSize))
			r.Post("/", handlers.NewCreateRecipeHandler(a.recipeWriter))
			r.With(middlewares.RequireAuth).Get("/download_shopping_cart/", handlers.NewDownloadShoppingCartHandler(a.shoppingList))
			r.Get("/{id}/", handlers.NewGetRecipeHandler(a.recipeReader))
			r.Patch("/{id}/", handlers.NewUpdateRecipeHandler(a.recipeWriter))
			r.Delete("/{id}/", handlers.NewDeleteRecipeHandler(a.recipeWriter))
			r.Post("/{id}/favorite/", handlers.NewAddToListHandler(a.favorites))
			r.Delete("/{id}/favorite/", handlers.NewRemoveFromListHandler(a.favorites))
			r.Post("/{id}/shopping_cart/", handlers.NewAddToListHandler(a.shoppingCart))
			r.Delete("/{id}/shopping_cart/", handlers.NewRemoveFromListHandler(a.shoppingCart))
		})
	})

	return r
}

// mediaPath returns the URL path under which local images are served.
func mediaPath(mediaURL string) string {
	u, err := url.Parse(mediaURL)
	if err != nil || u.Path == "" {
		return "/media"
	}
	return strings.TrimRight(u.Path, "/")
}

// newImageStore picks S3 when a bucket is configured, local disk otherwise.
func newImageStore(ctx context.Context, cfg config) (services.ImageStore, error) {
	if cfg.S3Bucket == "" {
		return facades.NewDiskImageFacade(cfg.MediaRoot, cfg.MediaURL), nil
	}

	client, err := facades.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		return nil, err
	}
	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
	return facades.NewS3ImageFacade(client, cfg.S3Bucket, publicURL), nil
}

// run initializes the logger, tracing, database, Redis, Kafka, image
// storage and HTTP server. It serves until ctx is cancelled, then shuts
// the server down gracefully.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Initialize tracing
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Version:     buildVersion,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    true,
	})
	if err != nil {
		return fmt.Errorf("tracing init: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Log.Errorw("tracing shutdown error", "error", err)
		}
	}()

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer; events are dropped with a warning when no broker is set
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
		defer w.Close()
		kafkaWriter = w
	}

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("image storage init: %w", err)
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)
	userRepo := repositories.NewUserRepository(db, txGetter)
	recipeRepo := repositories.NewRecipeRepository(db, txGetter)
	favoriteRepo := repositories.NewFavoriteRepository(db, txGetter)
	cartRepo := repositories.NewShoppingCartRepository(db, txGetter)
	subscriptionRepo := repositories.NewSubscriptionRepository(db, txGetter)
	shoppingListRepo := repositories.NewShoppingListRepository(db, txGetter)
	tagRepo := repositories.NewTagRepository(db, txGetter)
	ingredientRepo := repositories.NewIngredientRepository(db, txGetter)
	tagCacheRepo := repositories.NewTagCacheRepository(rdb, time.Duration(cfg.RedisTagCacheExpSecond)*time.Second)
	blacklistRepo := repositories.NewTokenBlacklistRepository(rdb)
	ingredientCacheRepo, err := repositories.NewIngredientCacheRepository(
		cfg.IngredientCacheSize,
		time.Duration(cfg.IngredientCacheExpSecond)*time.Second,
	)
	if err != nil {
		return fmt.Errorf("ingredient cache init: %w", err)
	}

	// Initialize services
	events := services.NewKafkaEventPublisher(kafkaWriter)
	authService := services.NewAuthService(userRepo, tokens, blacklistRepo)
	userService := services.NewUserService(userRepo, subscriptionRepo)
	recipeService := services.NewRecipeService(recipeRepo, userRepo, favoriteRepo, cartRepo, subscriptionRepo, images, events)
	favoriteService := services.NewFavoriteService(favoriteRepo, recipeRepo, events)
	cartService := services.NewShoppingCartService(cartRepo, recipeRepo, events)
	shoppingListService := services.NewShoppingListService(shoppingListRepo)
	subscriptionService := services.NewSubscriptionService(userRepo, subscriptionRepo, recipeRepo, events)
	catalogService := services.NewCatalogService(tagRepo, tagCacheRepo, ingredientRepo, ingredientCacheRepo)

	// Setup router
	r := newRouter(db, tokens, blacklistRepo, api{
		registerer:     authService,
		loginer:        authService,
		logouter:       authService,
		passwordSetter: authService,
		users:          userService,
		recipeReader:   recipeService,
		recipeWriter:   recipeService,
		favorites:      favoriteService,
		shoppingCart:   cartService,
		shoppingList:   shoppingListService,
		tags:           catalogService,
		ingredients:    catalogService,
		subscriptions:  subscriptionService,
	}, cfg.PageSize)

	if cfg.S3Bucket == "" {
		prefix := mediaPath(cfg.MediaURL)
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.MediaRoot))))
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: otelhttp.NewHandler(r, "foodgram"),
	}

	// Serve until ctx is done, then shut down gracefully
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
			return err
		}
		logger.Log.Info("HTTP server stopped gracefully")
		return nil
	})

	return g.Wait()
}
