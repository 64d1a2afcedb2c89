// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/coursedoc/internal/history"
	"github.com/pdiddy/coursedoc/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.NewStore(types.HistoryConfig{
			Dir:        viper.GetString("history.dir"),
			MaxResults: viper.GetInt("history.max_results"),
		})
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No conversions recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tSTATUS\tIMAGES\tWARNINGS\tINPUT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				e.ConvertedAt.Local().Format(time.DateTime),
				e.Status, e.Images, e.Warnings, e.InputPath)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to list (default from config)")
	rootCmd.AddCommand(historyCmd)
}
