package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/nativebridge/internal/mangle"
	"github.com/Aman-CERP/nativebridge/internal/natives"
	"github.com/Aman-CERP/nativebridge/internal/output"
)

type mangleResult struct {
	Class     string `json:"class"`
	Method    string `json:"method"`
	Signature string `json:"signature,omitempty"`
	Kind      string `json:"kind"`
	Short     string `json:"short"`
	Long      string `json:"long,omitempty"`
}

func newMangleCmd() *cobra.Command {
	var (
		prefix     string
		raw        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "mangle CLASS METHOD [SIGNATURE]",
		Short: "Print the native symbol names of a method",
		Long: `Print the short and long native symbol names the runtime looks up
when binding a declared-native method.

CLASS may be a descriptor (Lstd/core/Object;) or a plain name (std/core/Object).
SIGNATURE may carry a #F$ (fast) or #C$ (critical) prefix.`,
		Example: `  nativebridge mangle Lcom/example/Main; run I:V
  nativebridge mangle --prefix ANI_ com/example/Main run
  nativebridge mangle --raw 'a/b.c'`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())

			if raw {
				for _, a := range args {
					out.Line(mangle.String(a))
				}
				return nil
			}
			if len(args) < 2 {
				return cmd.Usage()
			}

			res, err := mangleMethod(mangle.New(prefix), args)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			out.KeyValue("kind", res.Kind)
			out.KeyValue("short", res.Short)
			if res.Long != "" {
				out.KeyValue("long", res.Long)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", mangle.DefaultPrefix, "Method name prefix")
	cmd.Flags().BoolVar(&raw, "raw", false, "Mangle each argument as a plain identifier")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func mangleMethod(m mangle.Mangler, args []string) (mangleResult, error) {
	res := mangleResult{Class: args[0], Method: args[1]}
	sig := ""
	if len(args) > 2 {
		res.Signature = args[2]
		kind, rest, err := natives.ParseSignature(args[2])
		if err != nil {
			return res, err
		}
		res.Kind = kind.String()
		sig = rest
	} else {
		res.Kind = natives.Normal.String()
	}

	res.Short = m.MethodName(res.Class, res.Method)
	if sig != "" {
		res.Long = m.MethodNameWithSignature(res.Short, sig)
	}
	return res, nil
}
