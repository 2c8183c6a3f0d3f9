package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutrakids/config"
	"nutrakids/controllers"
	"nutrakids/routes"
	"nutrakids/services"
	"nutrakids/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedFile string
	logger   = utils.NewLogger("nutrakids")
)

var rootCmd = &cobra.Command{
	Use:   "nutrakids",
	Short: "NutraKids household meal tracking API",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed and start the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		logger.Info("migrations applied")
		return closeDB(db)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the food dictionary and achievement catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)
		return seed(db)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed-file", "", "TOML seed file (defaults to the built-in dictionary)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	utils.SetLogLevel(cfg.Log.Level)

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := config.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func seed(db *gorm.DB) error {
	sf, err := config.LoadSeed(seedFile)
	if err != nil {
		return err
	}
	n, err := config.Seed(db, sf)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("seed applied", "rows", n)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if err := seed(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.Server.GinMode)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: routes.SetupRouter(wire(ctx, cfg, db)),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func wire(ctx context.Context, cfg *config.Config, db *gorm.DB) routes.Controllers {
	hub := services.NewRealtimeHub()

	dict := services.NewGormFoodDictionary(db)
	suggestClient := services.NewClaudeClient(cfg.Claude.APIKey, cfg.Claude.APIURL, cfg.Claude.Model, cfg.Claude.SuggestionTimeout)
	planClient := services.NewClaudeClient(cfg.Claude.APIKey, cfg.Claude.APIURL, cfg.Claude.Model, cfg.Claude.MealPlanTimeout)
	suggest := services.NewSuggestionService(dict, services.NewClaudeClassifier(suggestClient))

	var rek services.LabelDetector
	if cfg.AWS.Region != "" {
		r, err := services.NewRekognitionService(ctx, cfg.AWS.Region)
		if err != nil {
			logger.Warn("image recognition disabled", "err", err)
		} else {
			rek = r
		}
	}

	auth := services.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.PasswordMinLength)
	children := services.NewChildService(db)
	prefs := services.NewPreferenceService(db)
	achievements := services.NewAchievementService(db, hub)

	return routes.Controllers{
		Auth: controllers.NewAuthController(auth),
		Food: controllers.NewFoodController(
			services.NewFoodService(dict, suggest, rek),
			services.NewHouseholdFoodService(db),
		),
		Child: &controllers.ChildController{
			Children:     children,
			Preferences:  prefs,
			Tracking:     services.NewTrackingService(db, achievements, hub),
			Achievements: achievements,
			MealPlans:    services.NewMealPlanService(db, prefs, planClient),
		},
		Realtime: controllers.NewRealtimeController(hub, children),
		Verifier: auth,
	}
}
