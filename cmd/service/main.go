package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/hourglassfit/hourglass/internal"
	"github.com/hourglassfit/hourglass/internal/config"
	"github.com/hourglassfit/hourglass/internal/logging"
	"github.com/hourglassfit/hourglass/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "main-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	cfg.AdminMode = config.ParseBoolFlag(os.Getenv("HOURGLASS_ADMIN_MODE"))
	cfg.ReadOnly = config.ParseBoolFlag(os.Getenv("HOURGLASS_READ_ONLY"))
	log.Debugf("admin mode: %t, read only: %t", cfg.AdminMode, cfg.ReadOnly)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	adminUsername := os.Getenv("HOURGLASS_ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("HOURGLASS_ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		log.Errorf("admin username and password not set. use HOURGLASS_ADMIN_USERNAME and HOURGLASS_ADMIN_PASSWORD_HASH")
		adminUsername = "todo"
		adminPasswordHash = "$$2a$$14$$gPDY7P8qGduPi.OKoPKzM.N/MTyZpP.q2tmbprdHH.1jyw7fK3KfW"
	}

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if openAIAPIKey == "" && geminiAPIKey == "" {
		log.Warnln("no coach API key set, coach chat will reply with a fixed message. use OPENAI_API_KEY or GEMINI_API_KEY")
	}

	redisPassword := os.Getenv("HOURGLASS_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use HOURGLASS_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	// make sure the user data and uploads dirs exist before anything writes to them
	for _, dir := range []string{cfg.UserDataDir, cfg.UploadsRootDir, cfg.VideosDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Fatalf("create data dir %s: %s", dir, err)
		}
		dirExists, err := pkg.PathExists(dir, true)
		if err != nil {
			log.Fatalf("check data dir %s: %s", dir, err)
		}
		if !dirExists {
			log.Fatalf("data dir not created: %s", dir)
		}
		log.Printf("data dir ready: %s", dir)
	}

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			OpenAIAPIKey:            openAIAPIKey,
			GeminiAPIKey:            geminiAPIKey,
			VersionInfo:             versionInfo,
			AdminUsername:           adminUsername,
			AdminPasswordHash:       adminPasswordHash,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
