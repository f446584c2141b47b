package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/nativebridge/internal/libpath"
	"github.com/Aman-CERP/nativebridge/internal/output"
)

func newPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths [LIBRARY]",
		Short: "Show the library search paths",
		Long: `Show the effective library search paths.

With LIBRARY, list the candidate file names in the order they are tried.
Names containing '/' bypass the search paths.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			out.Header("Library paths")
			out.List(cfg.LibraryPaths)

			if len(args) == 1 {
				out.Newline()
				out.Header("Candidates for " + args[0])
				out.List(libpath.Candidates(cfg.LibraryPaths, args[0]))
			}
			return nil
		},
	}
	return cmd
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
