//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hushd/hushd/internal/config"
	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/infra/waker"
	"github.com/hushd/hushd/internal/observability"
	"github.com/hushd/hushd/internal/observability/logging"
)

// On Cloud Run the wake-up callback arrives over HTTP (Cloud Tasks posts to
// /api/v1/evaluate?trigger=periodic_alarm), so the in-process fire callback
// is unused.
func initWaker(ctx context.Context, cfg *config.Config, _ func()) (domain.Waker, func() error, error) {
	cloudTasks, err := waker.NewCloudTasks(ctx, waker.CloudTasksConfig{
		ProjectID:  cfg.Waker.GCloudProjectID,
		LocationID: cfg.Waker.GCloudLocationID,
		QueueID:    cfg.Waker.GCloudQueueID,
		TargetURL:  cfg.Waker.GCloudTargetURL,
		MaxRetries: cfg.Waker.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("waker initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Waker.GCloudProjectID),
		slog.String("location", cfg.Waker.GCloudLocationID),
		slog.String("queue", cfg.Waker.GCloudQueueID),
	)

	cleanup := func() error {
		if err := cloudTasks.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return cloudTasks, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "hushd"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("hushd"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
