// Package main is the nativebridge command line tool.
package main

import (
	"os"

	"github.com/Aman-CERP/nativebridge/cmd/nativebridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
