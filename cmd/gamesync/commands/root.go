package commands

import (
	"context"
	"fmt"
	"os"

	"gamereviews-backend/lib/configutil"
	configsqlite "gamereviews-backend/lib/configutil/sqlite"
	"gamereviews-backend/lib/telemetry"
	"gamereviews-backend/services/catalogsync"

	"github.com/spf13/cobra"
)

type IgdbConfig struct {
	ClientID          string  `json:"client_id"`
	AccessToken       string  `json:"access_token"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

type Config struct {
	Database configsqlite.Struct `json:"database"`
	Igdb     IgdbConfig          `json:"igdb"`
	// Units/Groups override the built-in unit catalog when set.
	Units  []catalogsync.Unit  `json:"units"`
	Groups map[string][]string `json:"groups"`
}

// credentials may live in the environment instead of config.json5,
// missing ones abort before any network call.
func (c Config) igdbCredentials() (clientId, accessToken string, err error) {
	clientId = configutil.Env("TWITCH_CLIENT_ID", c.Igdb.ClientID)
	accessToken = configutil.Env("TWITCH_APP_ACCESS_TOKEN", c.Igdb.AccessToken)
	if clientId == "" || accessToken == "" {
		return "", "", fmt.Errorf("igdb credentials missing: set igdb.client_id/igdb.access_token in config.json5 or TWITCH_CLIENT_ID/TWITCH_APP_ACCESS_TOKEN in the environment")
	}
	return clientId, accessToken, nil
}

func (c Config) unitSet() catalogsync.UnitSet {
	if len(c.Units) == 0 {
		return catalogsync.DefaultUnits()
	}
	return catalogsync.NewUnitSet(c.Units, c.Groups)
}

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "gamesync",
	Short: "gamesync mirrors the igdb game catalog into the review database.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging and http dumps")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
