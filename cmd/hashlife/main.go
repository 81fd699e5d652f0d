// Command hashlife advances Game of Life patterns with the hashlife engine.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("hashlife failed", slog.Any("error", err))
		os.Exit(1)
	}
}
