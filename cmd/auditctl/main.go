package main

import (
	"os"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
