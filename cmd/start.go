package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"table-editor/core/config"
	"table-editor/core/database"
	"table-editor/core/loader"
	"table-editor/core/logger"
	"table-editor/core/middleware/auth"
	"table-editor/core/middleware/rayid"
	"table-editor/core/table"

	"table-editor/feature/editor"
	"table-editor/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "table-editor/docs/swagger"
)

// @title Table Editor API
// @version 1.0
// @description Review and apply edits to a warehouse table.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the table editor server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)
		logg = logg.With(zap.String("table", cfg.Editor.Table))

		// 3. Connect to the warehouse. Without it only the integrity checks run.
		var db *gorm.DB
		var cache *table.Cache
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Warehouse connection failed, editor disabled", zap.Error(err))
		} else {
			db = conn
			cache = table.NewCache(newTable(cfg, db), cfg.Editor.SnapshotTTL())
			logg.Info("Connected to warehouse", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage
		client, archiver, err := newArchiver(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Sessions and workspaces share the idle lifetime
		idle := time.Duration(cfg.Server.SessionMinutes) * time.Minute
		sessions := session.New(session.Config{
			Expiration:     idle,
			KeyLookup:      "cookie:table_editor_session",
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		})
		workspaces := editor.NewWorkspaceStore(idle)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go workspaces.Run(ctx, time.Minute)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(editor.NewFeature(cfg.Editor, cache, archiver, workspaces, sessions, logg))
		mgr.Register(integrity.NewFeature(client, cfg.Storage.Bucket, cfg.Storage.Region, db, tableExpectation(cfg), logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth protects the JSON API; the HTML editor is bound to its session
		app.Use("/api", auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		for _, f := range mgr.Features() {
			logg.Info("Feature registered", zap.String("feature", f.Name()), zap.Bool("enabled", f.IsEnabled()))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
