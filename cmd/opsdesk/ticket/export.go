// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/opsdesk-project/opsdesk/cmd/opsdesk/cli"
	"github.com/opsdesk-project/opsdesk/lib/config"
	"github.com/opsdesk-project/opsdesk/lib/deskapi"
)

func exportCommand() *cli.Command {
	var (
		format  string
		output  string
		name    string
		emotion string
		device  string
		from    string
		to      string
	)

	return &cli.Command{
		Name:    "export",
		Summary: "Download tickets as a spreadsheet",
		Description: `Download the ticket set as CSV or Excel, generated by the backend.
Filter flags narrow the export the same way they narrow "ticket list";
without filters the whole set is exported.`,
		Usage: "opsdesk ticket export [flags]",
		Examples: []cli.Example{
			{
				Description: "Export everything as CSV into the current directory",
				Command:     "opsdesk ticket export",
			},
			{
				Description: "Export one month as Excel",
				Command:     "opsdesk ticket export --format xlsx --from 2026-03-01 --to 2026-03-31 --output march.xlsx",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flagSet.StringVar(&format, "format", "csv", "export format: csv or xlsx")
			flagSet.StringVar(&output, "output", "", "output file path (default: tickets-<timestamp>.<ext> in the configured export directory)")
			flagSet.StringVar(&name, "name", "", "filter by customer name substring")
			flagSet.StringVar(&emotion, "emotion", "", "filter by classifier emotion label")
			flagSet.StringVar(&device, "device", "", "filter by device type")
			flagSet.StringVar(&from, "from", "", "filter by date lower bound (YYYY-MM-DD)")
			flagSet.StringVar(&to, "to", "", "filter by date upper bound (YYYY-MM-DD)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			var exportFormat deskapi.ExportFormat
			switch format {
			case "csv":
				exportFormat = deskapi.ExportCSV
			case "xlsx", "excel":
				exportFormat = deskapi.ExportExcel
			default:
				return cli.Validation("unknown format %q (want csv or xlsx)", format)
			}

			if output == "" {
				configuration, err := config.Load()
				if err != nil {
					return cli.Internal("load config: %v", err)
				}
				fileName := fmt.Sprintf("tickets-%s.%s",
					time.Now().Format("20060102-150405"), exportFormat.Extension())
				output, err = configuration.ExportPath(fileName)
				if err != nil {
					return cli.Internal("resolve export path: %v", err)
				}
			}

			client, err := connect(logger)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(ctx)
			defer cancel()

			file, err := os.Create(output)
			if err != nil {
				return cli.Internal("create output file: %v", err)
			}
			defer file.Close()

			query := deskapi.Query{
				FullName:   name,
				Emotion:    emotion,
				DeviceType: device,
				DateFrom:   from,
				DateTo:     to,
			}
			written, err := client.Download(ctx, exportFormat, query, file)
			if err != nil {
				os.Remove(output)
				return cli.Backend("downloading export", err)
			}

			logger.Info("export written", "path", output, "bytes", written)
			absolute, pathErr := filepath.Abs(output)
			if pathErr != nil {
				absolute = output
			}
			fmt.Println(absolute)
			return nil
		},
	}
}
