package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/martijn/boatapi/internal/core/repository"
	"github.com/martijn/boatapi/internal/core/service"
	"github.com/martijn/boatapi/internal/infrastructure/sqldb"
	"github.com/martijn/boatapi/internal/logging"
	"github.com/martijn/boatapi/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "boatapi",
	Short: "Boat API - boat registry behind a bearer token login",
	Long: `boatapi serves a small REST API for managing boats.

It provides:
- CRUD endpoints for boats with filtering, ordering and pagination
- Bearer token login for a single configured identity
- SQLite or PostgreSQL storage with embedded migrations
- Command line access to the same boat registry`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// initServices initializes all services
func initServices(ctx context.Context) (*Services, error) {
	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	// Initialize database
	driver, dsn := cfg.DataSource()
	db, err := sqldb.New(ctx, driver, dsn)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Debug(ctx, "database ready", "driver", driver)

	// Initialize repositories
	boatRepo := sqldb.NewBoatRepository(db)

	// Initialize services
	tokenService, err := service.NewTokenService(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		db.Close()
		logCloser.Close()
		return nil, err
	}
	verifier := service.NewCredentialVerifier(cfg.AuthUsername, cfg.AuthPassword)

	return &Services{
		DB:           db,
		Logger:       logger,
		logCloser:    logCloser,
		BoatRepo:     boatRepo,
		Verifier:     verifier,
		TokenService: tokenService,
		BoatService:  service.NewBoatService(boatRepo),
		AuthService:  service.NewAuthService(verifier, tokenService),
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB           *sqldb.DB
	Logger       logging.Logger
	logCloser    io.Closer
	BoatRepo     repository.BoatRepository
	Verifier     *service.CredentialVerifier
	TokenService *service.TokenService
	BoatService  *service.BoatService
	AuthService  *service.AuthService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.logCloser != nil {
		s.logCloser.Close()
	}
}
