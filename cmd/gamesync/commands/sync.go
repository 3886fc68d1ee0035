package commands

import (
	"fmt"
	"os"
	"time"

	"gamereviews-backend/lib/catalog/igdb"
	"gamereviews-backend/lib/configutil"
	"gamereviews-backend/lib/restyutil"
	"gamereviews-backend/lib/serviceutil"
	"gamereviews-backend/lib/telemetry"
	"gamereviews-backend/services/catalogsync"
	"gamereviews-backend/services/catalogsync/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var syncFlags struct {
	all       bool
	dryRun    bool
	resume    bool
	refresh   bool
	skipPages bool
	noDedup   bool
	pageSize  int64
}

func init() {
	syncCmd.Flags().BoolVar(&syncFlags.all, "all", false, "sync every known unit in priority order")
	syncCmd.Flags().BoolVar(&syncFlags.dryRun, "dry-run", false, "fetch, dedup and transform but do not write or checkpoint")
	syncCmd.Flags().BoolVar(&syncFlags.resume, "resume", false, "resume units from their stored checkpoints")
	syncCmd.Flags().BoolVar(&syncFlags.refresh, "refresh", false, "re-stamp last_synced on records that already exist")
	syncCmd.Flags().BoolVar(&syncFlags.skipPages, "skip-pages", false, "skip failing pages instead of aborting the unit")
	syncCmd.Flags().BoolVar(&syncFlags.noDedup, "no-dedup", false, "skip the existence pre-filter, rely on conflict-skip writes only")
	syncCmd.Flags().Int64Var(&syncFlags.pageSize, "page-size", igdb.MaxPageSize, "records per source request")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync [--all | <unit|group>...]",
	Short: "Syncs one or more catalog units into the local database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		units := cfg.unitSet()
		var selected []catalogsync.Unit
		if syncFlags.all {
			selected = units.All()
		} else {
			if len(args) == 0 {
				serviceutil.Fatal("no units requested", fmt.Errorf("pass unit ids, a group name, or --all"))
			}
			selected, err = units.Select(args)
			if err != nil {
				serviceutil.Fatal("failed to resolve units", err)
			}
		}

		clientId, accessToken, err := cfg.igdbCredentials()
		if err != nil {
			serviceutil.Fatal("bad configuration", err)
		}

		var dumps restyutil.InstrumentOutput
		if *verbose {
			dumps = restyutil.NewFilesystemOutput(".dev/resty/igdb")
		}
		source, err := igdb.NewClient(igdb.ClientOptions{
			ClientID:          clientId,
			AccessToken:       accessToken,
			RequestsPerSecond: cfg.Igdb.RequestsPerSecond,
			InstrumentOutput:  dumps,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize igdb client", err)
		}

		database, err := cfg.Database.OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer database.Close()

		policy := catalogsync.AbortUnit
		if syncFlags.skipPages {
			policy = catalogsync.SkipPage
		}
		syncer := catalogsync.NewSyncer(source, database, catalogsync.Options{
			PageSize:              syncFlags.pageSize,
			OnPageFailure:         policy,
			DryRun:                syncFlags.dryRun,
			Resume:                syncFlags.resume,
			RefreshExisting:       syncFlags.refresh,
			DisableExistenceCheck: syncFlags.noDedup,
		})

		ctx := serviceutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx)

		report := syncer.Run(ctx, selected)
		renderReport(report)
		if report.Failed() {
			os.Exit(1)
		}
	},
}

func renderReport(report catalogsync.RunReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"unit", "state", "fetched", "new", "written", "skipped dup", "failed", "elapsed"})
	for _, u := range report.Units {
		t.AppendRow(table.Row{
			u.Unit.ID,
			u.State.String(),
			u.Stats.Fetched,
			u.Stats.New,
			u.Stats.Written,
			u.Stats.SkippedDuplicate,
			u.Stats.Failed,
			u.Elapsed.Round(time.Second),
		})
	}
	totals := report.Totals()
	t.AppendFooter(table.Row{
		"total", "",
		totals.Fetched,
		totals.New,
		totals.Written,
		totals.SkippedDuplicate,
		totals.Failed,
		report.Elapsed.Round(time.Second),
	})
	t.Render()
}
