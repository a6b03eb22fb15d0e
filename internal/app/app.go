package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/internal/controller"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/database/migrations"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/mailer"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/storage"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/repository"
	"github.com/alimikegami/marketplace-service/internal/service"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const publishBackoff = 200 * time.Millisecond

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo

	// Optional overrides, built from Config when nil.
	Storage   storage.ObjectStorage
	Mailer    mailer.Mailer
	Publisher kafka.Publisher

	traceProvider *sdktrace.TracerProvider
	scheduler     gocron.Scheduler
	metrics       *echo.Echo
}

func (app *App) Start() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	if err := app.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	if err := migrations.Up(ctx, app.DB.DB); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	app.traceProvider = traceProvider

	if err := app.buildDependencies(ctx); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true

	tracer := traceProvider.Tracer(tracing.ServiceName)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(localmiddleware.Logger)

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandler())
	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	hasher := auth.NewHasher(
		auth.WithIterations(app.Config.CredentialConfig.Iterations),
		auth.WithKeyLength(app.Config.CredentialConfig.KeyLength),
	)

	userRepo := repository.CreateNewUserRepository(app.DB)
	clientRepo := repository.CreateNewClientRepository(app.DB)
	artistRepo := repository.CreateNewArtistRepository(app.DB)
	photoRepo := repository.CreateNewPhotoRepository(app.DB)
	membershipRepo := repository.CreateNewMembershipRepository(app.DB)

	userSvc := service.CreateNewUserService(userRepo, *app.Config, hasher, app.Mailer, app.Publisher)
	photoSvc := service.CreateNewPhotoService(userRepo, clientRepo, photoRepo, app.Storage)
	clientSvc := service.CreateNewClientService(clientRepo, userRepo, photoRepo, app.Mailer)
	artistSvc := service.CreateNewArtistService(artistRepo, userRepo, app.Mailer)
	membershipSvc := service.CreateNewMembershipService(membershipRepo, userRepo, clientRepo, app.Mailer, *app.Config)

	g := e.Group("/api/v1", localmiddleware.Session(app.Config.SessionConfig, userSvc))
	controller.CreateUserController(g, userSvc, photoSvc, *app.Config)
	controller.CreateClientController(g, clientSvc)
	controller.CreateArtistController(g, artistSvc)
	controller.CreatePhotoController(g, photoSvc)
	controller.CreateMembershipController(g, membershipSvc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	if err := app.startScheduler(membershipSvc); err != nil {
		return err
	}

	app.Server = e

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// buildDependencies creates the outbound integrations that were not injected.
// Kafka and S3 are optional and disabled when unconfigured.
func (app *App) buildDependencies(ctx context.Context) error {
	if app.Mailer == nil {
		m, err := mailer.CreateNewMailer(app.Config)
		if err != nil {
			return fmt.Errorf("creating mailer: %w", err)
		}
		app.Mailer = m
	}

	if app.Storage == nil {
		if app.Config.S3Config.Bucket == "" {
			log.Warn().Str("component", "buildDependencies").Msg("S3_BUCKET not set, photos will not be stored")
			app.Storage = storage.NopStorage{}
		} else {
			client, err := storage.CreateNewS3Client(ctx, app.Config.S3Config)
			if err != nil {
				return fmt.Errorf("creating s3 client: %w", err)
			}
			app.Storage = storage.CreateNewS3Storage(client, app.Config.S3Config.Bucket)
		}
	}

	if app.Publisher == nil && app.Config.KafkaConfig.BrokerAddress != "" {
		conn, err := kafka.CreateKafkaProducer(ctx, app.Config)
		if err != nil {
			log.Error().Err(err).Str("component", "buildDependencies").Msg("Kafka unavailable, user events disabled")
		} else {
			app.Publisher = kafka.CreateNewPublisher(conn, publishBackoff)
		}
	}

	return nil
}

func (app *App) startScheduler(membershipSvc service.MembershipService) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			app.Config.ReminderConfig.Interval,
		),
		gocron.NewTask(
			func() {
				sent, err := membershipSvc.SendExpiryReminders(context.Background())
				if err != nil {
					log.Error().Err(err).Str("component", "SendExpiryReminders").Msg("")
					return
				}
				log.Info().Str("component", "SendExpiryReminders").Int("sent", sent).Msg("membership reminders sent")
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("scheduling membership reminders: %w", err)
	}

	s.Start()
	app.scheduler = s

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if app.scheduler != nil {
		errs = append(errs, app.scheduler.Shutdown())
	}
	if app.metrics != nil {
		errs = append(errs, app.metrics.Shutdown(ctx))
	}
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.traceProvider != nil {
		errs = append(errs, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
