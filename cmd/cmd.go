// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// searchFlags are shared between the search and suggest commands.
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "tracks",
			Usage: "Number of track matches to request",
		},
		&cli.IntFlag{
			Name:  "albums",
			Usage: "Number of album matches to request",
		},
		&cli.IntFlag{
			Name:  "artists",
			Usage: "Number of artist matches to request",
		},
		&cli.IntFlag{
			Name:  "playlists",
			Usage: "Number of playlist matches to request",
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "Starting offset applied to every category",
		},
		&cli.IntFlag{
			Name:    "pages",
			Aliases: []string{"p"},
			Usage:   "Number of consecutive pages to fetch",
			Value:   1,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, json, csv, markdown)",
			Value:   "text",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write results to a file instead of stdout",
		},
		&cli.BoolFlag{
			Name:  "record",
			Usage: "Record the search in the local history database",
		},
	}
}

// searchCommand issues a standard catalog search.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search the catalog for tracks, albums, artists and playlists",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags:  searchFlags(),
		Action: r.Search,
	}
}

// suggestCommand issues a suggest-mode search for as-you-type style lookups.
func suggestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Search in suggest mode, tuned for partial queries",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags:  searchFlags(),
		Action: r.Suggest,
	}
}

// historyCommand manages the local search history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage recorded searches",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded searches, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Remove every recorded search",
				Action: r.HistoryClear,
			},
		},
	}
}

// setupCommand handles setup operations for the configuration file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive result browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse search results interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "suggest",
				Usage: "Search in suggest mode",
			},
		},
		Action: r.TUI,
	}
}
