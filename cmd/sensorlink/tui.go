package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/sensorlink/internal/tui"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	model := tui.New(tui.Deps{
		Ctx:         xslog.WithLogger(ctx, a.logger),
		Logger:      a.logger,
		Client:      a.client,
		Store:       a.store,
		Environment: a.cfg.Environment,
		Sensors:     a.cfg.Sensors,
		CallTimeout: a.cfg.CallTimeout,
	})

	p := tea.NewProgram(&model)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
