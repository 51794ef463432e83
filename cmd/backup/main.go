package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/hourglassfit/hourglass/internal/backup"
	"github.com/hourglassfit/hourglass/internal/config"
	"github.com/hourglassfit/hourglass/internal/dailylog"
	"github.com/hourglassfit/hourglass/internal/db"
	"github.com/hourglassfit/hourglass/internal/logging"

	log "github.com/sirupsen/logrus"
)

// google drive backup cmd: exports the daily logs from postgres and bundles
// them with the flat-file user data, then pushes everything to drive

func main() {
	credentialsFile := flag.String(
		"gd-creds",
		"./hourglass-drive-credentials.json",
		"google drive service account credentials json",
	)
	shareWith := flag.String("share-with", "", "email address to share the backups folder with")
	env := flag.String("env", "development", "environment: development or production")
	configPath := flag.String("config-path", "./config.toml", "path to the TOML config file")
	logsPath := flag.String("logs-path", "", "logs file path (empty for stdout)")
	logLevel := flag.String("log-level", "trace", "log level")

	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: *logsPath == "",
		LogLevel:    *logLevel,
		Environment: *env,
	})

	log.Infoln("starting user data backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}
	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	files, err := gatherBackupFiles(ctx, cfg)
	if err != nil {
		log.Fatalf("gather backup files: %s", err)
	}

	backupService, err := backup.NewGoogleDriveBackupService(ctx, credentialsFileBytes, *shareWith)
	if err != nil {
		log.Fatalf("failed to create google drive backup service: %s", err)
	}

	if err := backupService.DoBackup(time.Now(), files); err != nil {
		log.Fatalf("backup failed: %s", err)
	}

	log.Infoln("backup done")
}

func gatherBackupFiles(ctx context.Context, cfg *config.Config) ([]backup.File, error) {
	var files []backup.File

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: cfg.PostgresHost,
		DBPort: cfg.PostgresPort,
		DBName: cfg.PostgresDBName,
	})
	if err != nil {
		return nil, err
	}
	defer dbPool.Close()

	repo := dailylog.NewRepo(dbPool)
	logs, err := repo.GetLogs(ctx, dailylog.DefaultUserID, "1900-01-01", "2999-12-31")
	if err != nil {
		return nil, err
	}
	logsCSV, err := dailylog.ExportLogsCSV(logs)
	if err != nil {
		return nil, err
	}
	files = append(files, backup.File{
		Name:     "daily_logs.csv",
		MimeType: "text/csv",
		Data:     logsCSV,
	})

	// flat-file data; a missing file is fine on a fresh install
	flatFiles := []struct {
		path     string
		name     string
		mimeType string
	}{
		{cfg.UserProgressPath, "user_progress.json", "application/json"},
		{cfg.WorkoutLogPath, "workout_log.csv", "text/csv"},
		{cfg.VideosMappingPath, "videos.json", "application/json"},
		{cfg.VideosLibraryPath, "videos_db.json", "application/json"},
	}
	for _, flatFile := range flatFiles {
		data, err := os.ReadFile(flatFile.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warnf("skipping %s: file not found", flatFile.path)
				continue
			}
			return nil, err
		}
		files = append(files, backup.File{
			Name:     flatFile.name,
			MimeType: flatFile.mimeType,
			Data:     data,
		})
	}

	return files, nil
}
