// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// tuiCommand launches the interactive search screen. It is also the root action.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Launch the interactive artist search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "term",
				Aliases: []string{"t"},
				Usage:   "Artist searched on startup (defaults to search.default_term)",
			},
		},
		Action: r.TUI,
	}
}

// searchCommand looks up one or more artists and prints the results.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Look up artists by name",
		ArgsUsage: "NAME [NAME...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, json, csv",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "Directory to download each artist's image into",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent lookups when several names are given (defaults to search.workers)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second when several names are given (defaults to search.rate_limit)",
			},
		},
		Action: r.Search,
	}
}

// historyCommand handles the search history store
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Search history operations (persisted only when database.path names a file)",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent searches, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of entries (0 lists everything)",
						Value:   20,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, csv",
						Value:   "text",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded searches",
				Action: r.HistoryClear,
			},
		},
	}
}

// setupCommand handles first-run setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create configuration and prepare the history database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file from the built-in template",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Run history database migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// fixtureCommand serves canned artist responses for demos and offline use.
func fixtureCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Local stand-in for the artist search API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve fixture artists at /search?name=",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Interface to bind (defaults to fixture.host)",
					},
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on (defaults to fixture.port)",
					},
				},
				Action: r.FixtureServe,
			},
			{
				Name:   "list",
				Usage:  "List the artist names the fixture server knows",
				Action: r.FixtureList,
			},
		},
	}
}
