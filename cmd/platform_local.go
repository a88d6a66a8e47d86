//go:build !gcloud

package main

import (
	"context"
	"os"

	"github.com/hushd/hushd/internal/config"
	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/infra/waker"
	"github.com/hushd/hushd/internal/observability"
	"github.com/hushd/hushd/internal/observability/logging"
)

func initWaker(_ context.Context, _ *config.Config, fire func()) (domain.Waker, func() error, error) {
	return waker.NewTimer(fire), nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "hushd"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("hushd"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
