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

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/voltpoint/charge-station-api/internal/config"
	"github.com/voltpoint/charge-station-api/internal/handler"
	"github.com/voltpoint/charge-station-api/internal/repository"
	"github.com/voltpoint/charge-station-api/internal/usecase"
	"github.com/voltpoint/charge-station-api/shared/auth"
	"github.com/voltpoint/charge-station-api/shared/mailer"
	"github.com/voltpoint/charge-station-api/shared/validation"
)

const (
	mongoPingTimeout  = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), mongoPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(context.Background(), &logger, db)
	stationRepo := repository.NewStationMongoRepository(context.Background(), &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	smtpMailer := mailer.NewMailer(&logger)

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, stationRepo, jwtAuth, cfg)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, smtpMailer, cfg)
	stationUsecase := usecase.NewStationUsecase(stationRepo)

	authHandler := handler.NewAuthHandler(authUsecase, validator, &logger)
	passwordResetHandler := handler.NewPasswordResetHandler(passwordResetUsecase, validator, &logger)
	stationHandler := handler.NewStationHandler(stationUsecase, validator, &logger)

	router := handler.NewRouter(
		authHandler,
		passwordResetHandler,
		stationHandler,
		handler.Authenticator(jwtAuth, cfg.Token.Secret),
		&logger,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Port).Msg("server listening")
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
