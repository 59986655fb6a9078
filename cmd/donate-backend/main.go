package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/sumitroy01/Donate-v2/internal/config"
	"github.com/sumitroy01/Donate-v2/internal/db"
	"github.com/sumitroy01/Donate-v2/internal/handler"
	"github.com/sumitroy01/Donate-v2/internal/job"
	"github.com/sumitroy01/Donate-v2/internal/middleware"
	"github.com/sumitroy01/Donate-v2/internal/payment"
	"github.com/sumitroy01/Donate-v2/internal/repo"
	"github.com/sumitroy01/Donate-v2/internal/schedule"
	"github.com/sumitroy01/Donate-v2/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "donate-backend",
		Short: "donation platform backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the backend server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("currency", cfg.Razorpay.Currency),
	)

	userRepo := repo.NewUserRepo(conn)
	profileRepo := repo.NewProfileRepo(conn)

	mailSender := service.NewEmailSender(cfg.Mail)
	codes := service.CodeConfig{
		OTPTTL:         time.Duration(cfg.OTP.TTLSeconds) * time.Second,
		ResetTTL:       time.Duration(cfg.OTP.ResetTTLSeconds) * time.Second,
		ResendCooldown: time.Duration(cfg.OTP.ResendCooldownSeconds) * time.Second,
	}
	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	accountService := service.NewAccountService(userRepo, mailSender, codes, []byte(cfg.JWTSecret), jwtTTL)
	resetService := service.NewPasswordResetService(userRepo, mailSender, codes.ResetTTL)
	profileService := service.NewProfileService(profileRepo)

	gateway := payment.NewRazorpayClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	donationService := service.NewDonationService(profileRepo, gateway, cfg.Razorpay.Currency)

	deps := handler.RouterDeps{
		Auth:             handler.NewAuthHandler(accountService, resetService, int(jwtTTL/time.Second)),
		Profiles:         handler.NewProfileHandler(profileService),
		Donations:        handler.NewDonationHandler(donationService, cfg.PaymentRedirectURL),
		JWTSecret:        []byte(cfg.JWTSecret),
		PublicRateWindow: time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewCodeCleanupJob(userRepo), "*/30 * * * *"); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
