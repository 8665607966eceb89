package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/garrettladley/sensorlink/internal/client/github"
	"github.com/garrettladley/sensorlink/internal/version"
)

const (
	repoOwner = "garrettladley"
	repoName  = "sensorlink"
)

func upgradeCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Check for updates and install if available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			currentVersion := version.Get()

			client := github.NewClient()
			latest, err := client.GetLatestRelease(ctx, repoOwner, repoName)
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}

			if !version.IsNewer(currentVersion, latest.TagName) {
				fmt.Printf("sensorlink is up to date (%s)\n", currentVersion)
				return nil
			}

			if checkOnly {
				fmt.Printf("sensorlink %s is available (current %s): %s\n", latest.TagName, currentVersion, latest.HTMLURL)
				return nil
			}

			fmt.Printf("Updating sensorlink %s → %s\n", currentVersion, latest.TagName)

			if version.IsHomebrew() {
				return runUpgrade(ctx, "brew", "upgrade", repoName)
			}
			return runUpgrade(ctx, "go", "install", "github.com/"+repoOwner+"/"+repoName+"/cmd/sensorlink@"+latest.TagName)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
	return cmd
}

func runUpgrade(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s upgrade failed: %w", name, err)
	}
	fmt.Println("Successfully updated!")
	return nil
}
