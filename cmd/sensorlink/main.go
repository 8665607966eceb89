package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/sensorlink/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "sensorlink",
		Short:   "Health sensor SDK demo in your terminal",
		Long:    "Collects app credentials, authenticates a profile and manages sensor permissions.",
		Version: version.Get(),
		RunE:    runTUI,
	}

	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(credentialsCmd())
	rootCmd.AddCommand(upgradeCmd())
	addDevCommands(rootCmd)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
