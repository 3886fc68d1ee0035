package main

import (
	"context"

	"gamereviews-backend/cmd/gamesync/commands"
	"gamereviews-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.SetupFromEnv(ctx, "gamesync")
	commands.ExecuteContext(ctx)
}
