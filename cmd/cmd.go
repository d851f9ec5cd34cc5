// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// sessionFlag selects the session scope for a command; an empty value
// falls back to the configured default, then to global mode.
func sessionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "session",
		Aliases: []string{"s"},
		Usage:   "Session code or shareable link",
	}
}

// setupCommand handles database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead of migrating",
			},
		},
		Action: r.Setup,
	}
}

// queueCommand handles queue operations
func queueCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "queue",
		Aliases: []string{"q"},
		Usage:   "Jukebox queue operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current queue",
				Flags: []cli.Flag{
					sessionFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output the user queue as CSV",
					},
				},
				Action: r.QueueShow,
			},
			{
				Name:  "watch",
				Usage: "Poll the queue and re-render on change until interrupted",
				Flags: []cli.Flag{
					sessionFlag(),
				},
				Action: r.QueueWatch,
			},
			{
				Name:  "add",
				Usage: "Add a track to the queue",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "uri",
					},
				},
				Flags: []cli.Flag{
					sessionFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Track name",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Artist name",
					},
				},
				Action: r.QueueAdd,
			},
			{
				Name:   "skip",
				Usage:  "Skip the current track (admin)",
				Flags:  []cli.Flag{sessionFlag()},
				Action: r.QueueSkip,
			},
			{
				Name:  "clear",
				Usage: "Clear the shared queue (admin)",
				Flags: []cli.Flag{
					sessionFlag(),
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.QueueClear,
			},
			{
				Name:  "play-now",
				Usage: "Play a track immediately (admin)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uri"},
				},
				Flags:  []cli.Flag{sessionFlag()},
				Action: r.QueuePlayNow,
			},
			{
				Name:  "play-next",
				Usage: "Queue a track to play next (admin)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uri"},
				},
				Flags:  []cli.Flag{sessionFlag()},
				Action: r.QueuePlayNext,
			},
		},
	}
}

// searchCommand handles catalog lookups
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog for tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			sessionFlag(),
			&cli.BoolFlag{
				Name:  "radio",
				Usage: "Use the recommendations endpoint instead of search",
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
		Action: r.Search,
	}
}

// sessionCommand handles session lifecycle operations
func sessionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Manage jukebox sessions",
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create a new shareable session",
				Action: r.SessionCreate,
			},
			{
				Name:  "join",
				Usage: "Join a session by code or shareable link",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "code",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name to use after joining",
					},
				},
				Action: r.SessionJoin,
			},
			{
				Name:  "rename",
				Usage: "Change your display name in a session",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags:  []cli.Flag{sessionFlag()},
				Action: r.SessionRename,
			},
			{
				Name:   "info",
				Usage:  "Show the stored identity for a session",
				Flags:  []cli.Flag{sessionFlag()},
				Action: r.SessionInfo,
			},
		},
	}
}

// adminCommand handles admin state operations
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Admin state operations",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Check whether this client holds admin privileges",
				Action: r.AdminStatus,
			},
			{
				Name:   "deactivate",
				Usage:  "Drop admin privileges",
				Action: r.AdminDeactivate,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive queueing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive jukebox TUI",
		Flags:   []cli.Flag{sessionFlag()},
		Action:  r.TUI,
	}
}
