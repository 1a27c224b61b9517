package main

import (
	"coniugo-backend/lib/serviceutil"
	"coniugo-backend/lib/telemetry"
	"context"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	err := telemetry.SetupFromEnv(ctx, "coniugo-server")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		telemetry.Shutdown(context.Background())
	}()

	telemetry.InstrumentPerfStats(ctx)
}
