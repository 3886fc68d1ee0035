package commands

import (
	"os"
	"time"

	"gamereviews-backend/lib/configutil"
	"gamereviews-backend/lib/serviceutil"
	"gamereviews-backend/services/catalogsync"
	"gamereviews-backend/services/catalogsync/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows stored record counts and any outstanding checkpoints.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		database, err := cfg.Database.OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer database.Close()

		ctx := cmd.Context()
		qry := db.New(database)

		count, err := qry.CountGames(ctx)
		if err != nil {
			serviceutil.Fatal("failed to count games", err)
		}
		checkpoints, err := catalogsync.NewStoreCheckpoints(qry).List(ctx)
		if err != nil {
			serviceutil.Fatal("failed to list checkpoints", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"unit", "offset", "fetched", "new", "written", "skipped dup", "failed", "updated"})
		for _, cp := range checkpoints {
			t.AppendRow(table.Row{
				cp.Unit,
				cp.Offset,
				cp.Stats.Fetched,
				cp.Stats.New,
				cp.Stats.Written,
				cp.Stats.SkippedDuplicate,
				cp.Stats.Failed,
				cp.UpdatedAt.Format(time.DateTime),
			})
		}
		t.AppendFooter(table.Row{"games stored", count})
		t.Render()
	},
}
