package main

import (
	"context"
	"fmt"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/shared"
	"github.com/cadencefm/cadence/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing search results.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	if r.backend == nil {
		return fmt.Errorf("%w: set Spotify credentials in config.toml", shared.ErrMissingCredentials)
	}

	kind := catalog.KindStandard
	if cmd.Bool("suggest") {
		kind = catalog.KindSuggest
	}

	model := ui.NewModel(r.registry, r.backend, r.searchOptions(cmd, query, kind), r.config.Search.LoadTimeout())
	defer model.Close()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
