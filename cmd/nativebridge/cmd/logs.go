package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/nativebridge/internal/logging"
	"github.com/Aman-CERP/nativebridge/internal/output"
)

func newLogsCmd() *cobra.Command {
	var (
		lines   int
		level   string
		library string
		file    string
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View the bridge debug log",
		Long: `Print recent records from the debug log written by --debug runs
(~/.nativebridge/logs/bridge.log).`,
		Example: `  nativebridge logs -n 50
  nativebridge logs --level warn --library libentry.so
  nativebridge logs -f`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := logging.FindLogFile(file)
			if err != nil {
				return err
			}

			v := logging.NewViewer(logging.ViewerConfig{
				Level:   level,
				Library: library,
				NoColor: !output.UseColor(cmd.OutOrStdout()),
			}, cmd.OutOrStdout())

			entries, err := v.Tail(path, lines)
			if err != nil {
				return err
			}
			v.Print(entries)

			if !follow {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return followLog(ctx, v, path)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of lines to show")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level (debug, info, warn, error)")
	cmd.Flags().StringVar(&library, "library", "", "Only records about this library")
	cmd.Flags().StringVar(&file, "file", "", "Log file (default ~/.nativebridge/logs/bridge.log)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new records")

	return cmd
}

func followLog(ctx context.Context, v *logging.Viewer, path string) error {
	entries := make(chan logging.Entry, 16)
	errCh := make(chan error, 1)
	go func() { errCh <- v.Follow(ctx, path, entries) }()

	for {
		select {
		case e := <-entries:
			v.Print([]logging.Entry{e})
		case err := <-errCh:
			return err
		}
	}
}
