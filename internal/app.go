package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-manager-form/config"
	"user-manager-form/internal/application/ports"
	"user-manager-form/internal/application/services"
	"user-manager-form/internal/domain/form"
	"user-manager-form/internal/infrastructure/api"
	apiuser "user-manager-form/internal/infrastructure/api/user"
	"user-manager-form/internal/infrastructure/jwt"
	"user-manager-form/internal/infrastructure/metrics"
	"user-manager-form/internal/infrastructure/mq"
	"user-manager-form/internal/interface/api/rest"
	"user-manager-form/internal/interface/api/rest/middleware"
	"user-manager-form/internal/interface/tui"
	"user-manager-form/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	source     uuid.UUID
	httpSrv    *http.Server
	mCounter   *prometheus.CounterVec
	sync       ports.Synchronizer
	program    *tea.Program
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("error loading .env file: %v", err)
	}
	cfg := config.Load()

	// logger, the terminal belongs to the form
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{cfg.App.LogFile}
	zapCfg.ErrorOutputPaths = []string{cfg.App.LogFile}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}
	logger = logger.With(zap.String("service", cfg.App.Name))

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// records API
	collectionURL, err := cfg.CollectionURL()
	if err != nil {
		return nil, err
	}
	token := jwt.New(cfg.API.Token)
	checkToken(logger, token)

	client := api.NewHTTPClient(logger, mCounter, cfg.API.Timeout)
	userRepo := apiuser.NewRepository(client, collectionURL, token)

	a := &App{
		logger:   logger,
		cfg:      cfg,
		source:   uuid.New(),
		mCounter: mCounter,
	}

	// rabbitMQ, optional
	var hooks []services.Hook
	if cfg.MQEnabled() {
		if err = a.initMQ(ctx); err != nil {
			logger.Error("rabbitMQ disabled", zap.Error(err))
		} else {
			hooks = append(hooks, services.PublishHook(a.mq, a.source, logger, mCounter))
		}
	}

	a.sync = services.NewSynchronizer(userRepo, form.NewState(), logger, mCounter, hooks...)

	// requests in flight finish on their own when the form goes away
	model := tui.New(context.WithoutCancel(ctx), a.sync, tui.NewPrinter(cfg.App.Lang))
	a.program = tea.NewProgram(model, tea.WithAltScreen())

	if a.mq != nil {
		handler := services.RemoteChangeHandler(a.sync, a.source, mCounter, func() {
			a.program.Send(tui.RefreshMsg{})
		})
		consumer := rmqconsumer.New(cfg.MQ, logger, handler)
		if err = a.initConsumer(consumer); err != nil {
			logger.Error("rabbitMQ consumer disabled", zap.Error(err))
		} else {
			a.mqConsumer = consumer
		}
	}

	// ops
	if cfg.App.OpsPort != "" {
		a.httpSrv = &http.Server{
			Addr:              ":" + cfg.App.OpsPort,
			Handler:           a.opsRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	logger.Info("app initialized",
		zap.String("collection", collectionURL),
		zap.Bool("mq", a.mq != nil),
		zap.String("source", a.source.String()),
	)

	return a, nil
}

func (a *App) initMQ(ctx context.Context) error {
	dsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(a.cfg.MQ, a.logger, a.mCounter)
	if err = rbMQ.Connect(ctx, dsn); err != nil {
		return fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	if err = rbMQ.Init(); err != nil {
		_ = rbMQ.GetConn().Close()
		return fmt.Errorf("failed init rabbitMQ: %w", err)
	}
	a.mq = rbMQ

	return nil
}

func (a *App) initConsumer(c ports.RMQConsumer) error {
	dsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("RabbitMQ config error: %w", err)
	}
	if err = c.Connect(dsn); err != nil {
		return fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = c.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}

	return nil
}

func (a *App) opsRouter() *gin.Engine {
	switch a.cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	// gin's debug output would paint over the form
	gin.DefaultWriter = zap.NewStdLog(a.logger).Writer()
	gin.DefaultErrorWriter = gin.DefaultWriter

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(a.logger))
	rest.NewOpsController(r, a.cfg.App.Name, prometheus.DefaultGatherer)

	return r
}

// checkToken only warns: the records API is the one that accepts or rejects it.
func checkToken(logger *zap.Logger, token *jwt.Token) {
	if token.Empty() {
		return
	}
	left, ok := token.ExpiresIn(time.Now())
	switch {
	case !ok:
		logger.Warn("API token carries no readable expiry, sending as is")
	case left <= 0:
		logger.Warn("API token expired", zap.Duration("expired_ago", -left))
	default:
		logger.Info("API token loaded", zap.Duration("expires_in", left))
	}
}

func (a *App) Close() {
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run drives the form and the background workers through a single context.
// The app stops when the form quits or on a signal.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		a.logger.Info("starting " + a.cfg.App.Name)
		if _, err := a.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("form "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.httpSrv != nil {
		g.Go(func() error {
			a.logger.Info("starting ops server", zap.String("addr", a.httpSrv.Addr))
			if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("ops server "+a.cfg.App.Name+" error: %w", err)
			}

			return nil
		})
	}

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	a.program.Quit()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("ops server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) Logger() *zap.Logger { return a.logger }
