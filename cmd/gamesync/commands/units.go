package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gamereviews-backend/lib/configutil"
	"gamereviews-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(unitsCmd)
}

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Lists the units of work and priority groups available to sync.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		units := cfg.unitSet()
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"id", "name", "priority", "estimate", "filter"})
		for _, u := range units.All() {
			t.AppendRow(table.Row{u.ID, u.Name, u.Priority, u.Estimate, u.Filter})
		}
		t.Render()

		groups := units.Groups()
		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("group %s: %s\n", name, strings.Join(groups[name], ", "))
		}
	},
}
