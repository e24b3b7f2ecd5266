package main

import (
	"fmt"
	"os"

	"github.com/SscSPs/nexkeep/internal/platform/logger"
)

func main() {
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	Execute()
}
