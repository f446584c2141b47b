package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/nativebridge/internal/output"
	"github.com/Aman-CERP/nativebridge/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput, shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, build information and the accepted native interface versions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			switch {
			case shortOutput:
				_, err := fmt.Fprintln(w, version.Short())
				return err
			case jsonOutput:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(version.GetInfo())
			}

			abi := version.GetInfo().ABI
			out := output.New(w)
			out.Line(version.String())
			out.KeyValue("legacy", fmt.Sprintf("%s returns %s", abi.LegacyEntryPoint, abi.LegacyVersion))
			out.KeyValue("modern", fmt.Sprintf("%s accepts %d-%d", abi.ModernEntryPoint, abi.ModernMin, abi.ModernMax))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	cmd.Flags().BoolVar(&shortOutput, "short", false, "Output only the version number")

	return cmd
}
