package main

import (
	"coniugo-backend/cmd/coniugo-cli/commands"
	"coniugo-backend/lib/telemetry"
	"context"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "coniugo-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
