package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dailyroll/dailyroll/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Optional .env for DAILYROLL_HOME / DAILYROLL_DB overrides
	_ = godotenv.Load()

	commands.SetVersion(version, commit, date)
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
