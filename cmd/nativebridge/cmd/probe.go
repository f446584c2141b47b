package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/nativebridge/internal/abi"
	"github.com/Aman-CERP/nativebridge/internal/dynlib"
	bridgeerrors "github.com/Aman-CERP/nativebridge/internal/errors"
	"github.com/Aman-CERP/nativebridge/internal/libpath"
	"github.com/Aman-CERP/nativebridge/internal/output"
)

// probedLibrary adapts an opened handle to abi.Library.
type probedLibrary struct {
	name   string
	handle dynlib.Handle
}

func (p probedLibrary) Name() string { return p.name }

func (p probedLibrary) FindSymbol(name string) (uintptr, bool) {
	return p.handle.Symbol(name)
}

type probeResult struct {
	Library    string          `json:"library"`
	Path       string          `json:"path"`
	EntryPoint string          `json:"entry_point,omitempty"`
	Symbols    map[string]bool `json:"symbols,omitempty"`
}

// probe opens name the way the registry would and inspects it without
// running any constructor.
func probe(opener dynlib.Opener, dirs []string, name string, symbols []string) (probeResult, error) {
	res, err := libpath.New(opener, slog.Default()).Resolve(dirs, name)
	if err != nil {
		return probeResult{}, bridgeerrors.LoadError(err.Error(), err).WithDetail("library", name)
	}
	defer func() { _ = res.Handle.Close() }()

	lib := probedLibrary{name: name, handle: res.Handle}
	pr := probeResult{Library: name, Path: res.Path, EntryPoint: abi.Detect(lib)}
	if len(symbols) > 0 {
		pr.Symbols = make(map[string]bool, len(symbols))
		for _, s := range symbols {
			_, ok := lib.FindSymbol(s)
			pr.Symbols[s] = ok
		}
	}
	return pr, nil
}

func newProbeCmd() *cobra.Command {
	var (
		extraPaths []string
		symbols    []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "probe LIBRARY",
		Short: "Show where a library resolves and which constructor it exports",
		Long: `Resolve LIBRARY against the configured search paths, open it and report
which constructor entry point it exports (EtsNapiOnLoad or ANI_Constructor).

The constructor is never called.`,
		Example: `  nativebridge probe libentry.so
  nativebridge probe --path ./build/lib --symbol ETS_app_Main_run libentry.so`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dirs := append(append([]string(nil), cfg.LibraryPaths...), extraPaths...)

			pr, err := probe(dynlib.NewSystem(), dirs, args[0], symbols)
			if err != nil {
				return err
			}
			return printProbe(cmd, pr, jsonOutput)
		},
	}

	cmd.Flags().StringArrayVar(&extraPaths, "path", nil, "Additional search directory (repeatable)")
	cmd.Flags().StringArrayVar(&symbols, "symbol", nil, "Check that the library exports this symbol (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func printProbe(cmd *cobra.Command, pr probeResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(pr)
	}

	out := output.New(cmd.OutOrStdout())
	out.Successf("%s resolved to %s", pr.Library, pr.Path)
	switch pr.EntryPoint {
	case abi.LegacyEntryPoint:
		out.KeyValue("constructor", fmt.Sprintf("%s (legacy, expects version 0x%08x)", pr.EntryPoint, abi.LegacyVersion))
	case abi.ModernEntryPoint:
		out.KeyValue("constructor", fmt.Sprintf("%s (modern, versions %d-%d)", pr.EntryPoint, abi.MinModernVersion, abi.MaxModernVersion))
	default:
		out.Warning("no constructor entry point exported")
	}
	for _, s := range sortedKeys(pr.Symbols) {
		if pr.Symbols[s] {
			out.KeyValue(s, "exported")
		} else {
			out.KeyValue(s, "missing")
		}
	}
	return nil
}
