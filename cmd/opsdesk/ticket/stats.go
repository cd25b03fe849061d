// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"
	"github.com/opsdesk-project/opsdesk/lib/ticketstats"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:    "stats",
		Summary: "Print aggregate ticket counts",
		Description: `Print the aggregates behind the console's analytics tab: totals plus
per-emotion, per-device, per-status, and per-day counts, computed over
the backend's working set.`,
		Usage: "opsdesk ticket stats",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			client, err := connect(logger)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(ctx)
			defer cancel()

			records, err := client.Snapshot(ctx, 0)
			if err != nil {
				return cli.Backend("loading tickets", err)
			}
			if len(records) == 0 {
				logger.Info("no tickets recorded")
				return nil
			}

			summary := ticketstats.Summarize(records)
			fmt.Printf("%d tickets, %d closed, %d objects, %d device types, %d days\n\n",
				summary.Total, summary.Closed, summary.DistinctObjects,
				summary.DistinctDeviceTypes, summary.DaysRecorded)

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			writeGroup := func(title string, rows []ticketstats.NameValue) {
				fmt.Fprintf(writer, "%s\t\n", title)
				for _, row := range rows {
					fmt.Fprintf(writer, "  %s\t%d\n", row.Name, row.Value)
				}
				fmt.Fprintln(writer, "\t")
			}
			writeGroup("By emotion", ticketstats.ByEmotion(records))
			writeGroup("By device type", ticketstats.ByDeviceType(records))
			writeGroup("By status", ticketstats.ByStatus(records))

			fmt.Fprintln(writer, "By day\t")
			for _, day := range ticketstats.ByDay(records) {
				fmt.Fprintf(writer, "  %s\t%d\n", day.Day, day.Count)
			}
			return writer.Flush()
		},
	}
}
