package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"

	"conferencedirectory/config"
	"conferencedirectory/internal/adapters/auth"
	"conferencedirectory/internal/adapters/email"
	httpdelivery "conferencedirectory/internal/delivery/http"
	"conferencedirectory/internal/delivery/http/controllers"
	"conferencedirectory/internal/domain"
	"conferencedirectory/internal/repository/memory"
	"conferencedirectory/internal/repository/postgres"
	"conferencedirectory/internal/services"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "Keep all data in process memory instead of PostgreSQL",
			},
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "Apply pending migrations before serving",
			},
		},
		Action: runServe,
	}
}

// repositories groups the storage ports the services are built from.
type repositories struct {
	users       domain.UserRepository
	conferences domain.ConferenceRepository
	speakers    domain.SpeakerRepository
	tags        domain.TagRepository
	memberships domain.MembershipRepository
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repos repositories
	if cmd.Bool("in-memory") {
		logger.Warn("using in-memory storage; data is lost on exit")
		store := memory.NewStore()
		repos = repositories{
			users:       store.Users(),
			conferences: store.Conferences(),
			speakers:    store.Speakers(),
			tags:        store.Tags(),
			memberships: store.Memberships(),
		}
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		if cmd.Bool("migrate") {
			applied, err := postgres.Migrate(ctx, db)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied", "versions", applied)
		}
		repos = repositories{
			users:       postgres.NewUserRepository(db),
			conferences: postgres.NewConferenceRepository(db),
			speakers:    postgres.NewSpeakerRepository(db),
			tags:        postgres.NewTagRepository(db),
			memberships: postgres.NewMembershipRepository(db),
		}
	}

	handler, err := buildHandler(cfg, logger, repos)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildHandler(cfg *config.Config, logger *slog.Logger, repos repositories) (http.Handler, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	jwt := auth.NewJWT(cfg.SessionSecret)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	timeout := cfg.RequestTimeout

	conferenceSvc := services.NewConferenceService(repos.conferences, repos.tags, timeout)
	speakerSvc := services.NewSpeakerService(repos.conferences, repos.speakers, timeout)
	membershipSvc := services.NewMembershipService(repos.memberships, repos.conferences, emailSvc, logger, timeout)
	authSvc := services.NewAuthService(repos.users, hasher, jwt, cfg.SessionTTL, timeout)

	return httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:         logger,
		Verifier:       jwt,
		AllowedOrigins: cfg.AllowedOrigins,
		Conferences:    controllers.NewConferenceController(logger, conferenceSvc),
		Speakers:       controllers.NewSpeakerController(logger, speakerSvc),
		Memberships:    controllers.NewMembershipController(logger, membershipSvc),
		Auth:           controllers.NewAuthController(logger, authSvc, cfg.SessionTTL, cfg.IsProduction()),
	}), nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
