package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"yelpcamp/internal/config"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/handlers"
	"yelpcamp/internal/images"
	"yelpcamp/internal/services"
	"yelpcamp/internal/sessions"
	"yelpcamp/internal/store"
	"yelpcamp/internal/utils"
	"yelpcamp/internal/web"
)

// Deps are the collaborators the HTTP surfaces are built from.
type Deps struct {
	Store    store.Store
	Geocoder geocode.Geocoder
	Images   images.Store
	// Storage backs sessions. Nil keeps them in memory.
	Storage     fiber.Storage
	SecretKey   string
	TokenSecret string
	MapTilerKey string
	// UploadDir is served at /uploads when set.
	UploadDir    string
	SecureCookie bool
	// BcryptCost of 0 selects bcrypt's default.
	BcryptCost int
}

// New builds the fiber app with every route registered.
func New(d Deps) *fiber.App {
	sm := sessions.NewManager(d.Storage, d.SecureCookie)

	creds := services.NewCredentials(d.BcryptCost)
	tokens := services.NewTokens(d.TokenSecret)
	userService := services.NewUserService(d.Store, creds, tokens)
	listingService := services.NewListingService(d.Store, d.Geocoder, d.Images)
	reviewService := services.NewReviewService(d.Store)
	authz := services.NewAuthorizer(d.Store)

	app := fiber.New(fiber.Config{
		Views:        web.NewEngine(d.MapTilerKey),
		ErrorHandler: handlers.ErrorHandler(sm),
		BodyLimit:    20 * 1024 * 1024,
	})

	// Middleware
	app.Use(handlers.MethodOverride())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: sessions.CookieKey(d.SecretKey),
	}))

	if d.UploadDir != "" {
		app.Static("/uploads", d.UploadDir)
	}
	if opener, ok := d.Images.(handlers.ImageOpener); ok {
		app.Get("/images/:id", handlers.ServeImage(opener))
	}

	// Health Check
	app.Get("/health", handlers.Health(d.Store))

	// JSON API
	api := app.Group("/api", cors.New())
	api.Post("/register", handlers.APIRegister(userService))
	api.Post("/login", handlers.APILogin(userService))
	api.Post("/refresh", handlers.APIRefresh(userService))
	api.Get("/campgrounds", handlers.APIListCampgrounds(listingService))
	api.Get("/campgrounds/geojson", handlers.APICampgroundsGeoJSON(listingService))
	api.Get("/campgrounds/:id", handlers.APIGetCampground(listingService))

	auth := handlers.AuthMiddleware(tokens)
	api.Post("/campgrounds", auth, handlers.APICreateCampground(listingService))
	api.Put("/campgrounds/:id", auth, handlers.RequireListingAuthor(authz), handlers.APIUpdateCampground(listingService))
	api.Delete("/campgrounds/:id", auth, handlers.RequireListingAuthor(authz), handlers.APIDeleteCampground(listingService))
	api.Post("/campgrounds/:id/reviews", auth, handlers.APICreateReview(reviewService))
	api.Delete("/campgrounds/:id/reviews/:reviewId", auth, handlers.RequireReviewAuthor(authz), handlers.APIDeleteReview(reviewService))
	api.Use(handlers.NotFound())

	// Pages
	site := app.Group("", handlers.LoadCurrentUser(sm, userService))
	login := handlers.RequireLogin(sm)

	site.Get("/", handlers.Home(sm))
	site.Get("/register", handlers.RegisterForm(sm))
	site.Post("/register", handlers.Register(sm, userService))
	site.Get("/login", handlers.LoginForm(sm))
	site.Post("/login", handlers.Login(sm, userService))
	site.Get("/logout", handlers.Logout(sm))

	site.Get("/campgrounds", handlers.CampgroundIndex(sm, listingService))
	site.Post("/campgrounds", login, handlers.CampgroundCreate(sm, listingService))
	site.Get("/campgrounds/new", login, handlers.CampgroundNew(sm))
	site.Get("/campgrounds/:id", handlers.CampgroundShow(sm, listingService))
	site.Get("/campgrounds/:id/edit", login, handlers.RequireListingAuthor(authz), handlers.CampgroundEdit(sm, listingService))
	site.Put("/campgrounds/:id", login, handlers.RequireListingAuthor(authz), handlers.CampgroundUpdate(sm, listingService))
	site.Delete("/campgrounds/:id", login, handlers.RequireListingAuthor(authz), handlers.CampgroundDelete(sm, listingService))
	site.Post("/campgrounds/:id/reviews", login, handlers.ReviewCreate(sm, reviewService))
	site.Delete("/campgrounds/:id/reviews/:reviewId", login, handlers.RequireReviewAuthor(authz), handlers.ReviewDelete(sm, reviewService))

	site.Use(handlers.NotFound())

	return app
}

// Run opens every backend named by cfg, serves until SIGINT or SIGTERM and
// then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	imgs, closeImages, err := openImages(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeImages()

	var storage fiber.Storage
	if cfg.SessionStore == config.SessionStoreRedis {
		rs, err := sessions.NewRedisStorage(sessions.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer rs.Close()
		storage = rs
	}

	d := Deps{
		Store:        st,
		Geocoder:     geocode.NewMapTiler(cfg.MapTilerBaseURL, cfg.MapTilerAPIKey, cfg.ExternalTimeout),
		Images:       imgs,
		Storage:      storage,
		SecretKey:    cfg.SessionSecret,
		TokenSecret:  cfg.TokenSecret(),
		MapTilerKey:  cfg.MapTilerAPIKey,
		SecureCookie: strings.HasPrefix(cfg.BaseURL, "https://"),
	}
	if disk, ok := imgs.(*images.Disk); ok {
		d.UploadDir = disk.Dir()
	}
	app := New(d)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()

	// Graceful Shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return err
	case <-sig:
	case <-ctx.Done():
	}

	log.Println("Gracefully shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		utils.LogError(err, "shutdown")
	}
	log.Println("Server shutdown complete")
	return nil
}

// openImages builds the image host named by cfg.ImageStore. The returned
// func releases its connections.
func openImages(ctx context.Context, cfg *config.Config) (images.Store, func(), error) {
	switch cfg.ImageStore {
	case config.ImageStoreGridFS:
		client, err := images.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		g, err := images.NewGridFS(client.Database(cfg.MongoDB), cfg.BaseURL)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return g, func() {
			utils.LogError(client.Disconnect(context.Background()), "disconnect mongo")
		}, nil
	case config.ImageStoreCloudinary:
		c, err := images.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryKey, cfg.CloudinarySecret)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	case config.ImageStoreDisk:
		d, err := images.NewDisk(cfg.UploadDir, cfg.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		return d, func() {}, nil
	default:
		return nil, nil, errors.New("unknown image store " + cfg.ImageStore)
	}
}
