package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/illuscio-dev/relayapi-go/mockrelay"
	"github.com/illuscio-dev/relayapi-go/offload"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"github.com/illuscio-dev/relayapi-go/server"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"gopkg.in/urfave/cli.v1"
)

const shutdownTimeout = 10 * time.Second

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML file with the validators the relay schedules",
	}
	addrFlag = cli.StringFlag{
		Name:  "addr",
		Usage: "Address the relay API listens on",
		Value: "127.0.0.1:18550",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log.level",
		Usage: "Log level (trace|debug|info|warn|error)",
		Value: "info",
	}
	sentryDSNFlag = cli.StringFlag{
		Name:  "sentry.dsn",
		Usage: "Report errors to this Sentry DSN",
	}
	encodeWorkersFlag = cli.IntFlag{
		Name:  "encode.workers",
		Usage: "Goroutines serializing responses, 0 for one per CPU",
	}
	maxBodyBytesFlag = cli.Int64Flag{
		Name:  "max-body-bytes",
		Usage: "Largest request body accepted",
		Value: server.DefaultMaxBodyBytes,
	}
	exposeDiagnosticsFlag = cli.BoolFlag{
		Name:  "expose-diagnostics",
		Usage: "Send error causes and stacks to clients",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mockrelay"
	app.Usage = "In-memory relay serving the builder and data API"
	app.Flags = []cli.Flag{
		configFlag,
		addrFlag,
		logLevelFlag,
		sentryDSNFlag,
		encodeWorkersFlag,
		maxBodyBytesFlag,
		exposeDiagnosticsFlag,
	}
	app.Action = run
	return app
}

// Builds the process logger. Errors are also sent to Sentry when sentryDSN is set.
func newLogger(level string, sentryDSN string) (*logrus.Logger, error) {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, xerrors.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(parsed)

	if sentryDSN == "" {
		return logger, nil
	}

	hook, err := logrus_sentry.NewSentryHook(sentryDSN, []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	})
	if err != nil {
		return nil, xerrors.Errorf("error creating sentry hook: %w", err)
	}
	hook.StacktraceConfiguration.Enable = true
	logger.AddHook(hook)

	return logger, nil
}

func loadConfig(path string) (mockrelay.Config, error) {
	if path == "" {
		return mockrelay.Config{}, nil
	}
	return mockrelay.LoadConfigFile(path)
}

func run(cliCtx *cli.Context) error {
	logger, err := newLogger(
		cliCtx.String(logLevelFlag.Name), cliCtx.String(sentryDSNFlag.Name),
	)
	if err != nil {
		return err
	}

	config, err := loadConfig(cliCtx.String(configFlag.Name))
	if err != nil {
		return err
	}

	relay, err := mockrelay.New(config, logger)
	if err != nil {
		return err
	}

	engine, err := relaytypes.NewContentEngine()
	if err != nil {
		return err
	}
	pool := offload.New(engine, cliCtx.Int(encodeWorkersFlag.Name))
	defer pool.Close()

	relayServer, err := server.New(
		relay,
		server.WithLogger(logger),
		server.WithEngine(engine),
		server.WithPool(pool),
		server.WithMaxBodyBytes(cliCtx.Int64(maxBodyBytesFlag.Name)),
		server.WithExposeDiagnostics(cliCtx.Bool(exposeDiagnosticsFlag.Name)),
	)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cliCtx.String(addrFlag.Name),
		Handler:           relayServer,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":       httpServer.Addr,
			"validators": len(config.Validators),
			"workers":    pool.Workers(),
		}).Info("mock relay listening")
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return xerrors.Errorf("error serving relay API: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return xerrors.Errorf("error shutting down: %w", err)
	}
	return nil
}
