// Package main provides the lifeline CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, types.ErrStorageUnavailable) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}
