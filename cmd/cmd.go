// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// userFlags are shared by every command that acts on a user's library.
func userFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "Account username",
			Sources: cli.EnvVars("MYMUSIC_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Account password",
			Sources: cli.EnvVars("MYMUSIC_PASSWORD"),
		},
	}
}

func withUser(flags ...cli.Flag) []cli.Flag {
	return append(userFlags(), flags...)
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

// setupCommand handles database and configuration setup.
func setupCommand(r *Runner) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}

	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, initialize the database and run migrations",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupRollback,
			},
		},
	}
}

func signupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "signup",
		Usage:  "Create an account",
		Flags:  userFlags(),
		Action: r.Signup,
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Check credentials against the stored account",
		Flags:  userFlags(),
		Action: r.Login,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the music catalog",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags: withUser(
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
			},
			jsonFlag(),
		),
		Action: r.Search,
	}
}

func likeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "like",
		Usage:     "Add a catalog track to your liked songs",
		Arguments: []cli.Argument{&cli.StringArg{Name: "track-id"}},
		Flags:     userFlags(),
		Action:    r.Like,
	}
}

func likesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "likes",
		Usage:  "List your liked songs",
		Flags:  withUser(jsonFlag()),
		Action: r.Likes,
	}
}

func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "Save a catalog track to your downloads",
		Arguments: []cli.Argument{&cli.StringArg{Name: "track-id"}},
		Flags:     userFlags(),
		Action:    r.Download,
	}
}

func downloadsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "downloads",
		Usage:  "List your downloaded songs",
		Flags:  withUser(jsonFlag()),
		Action: r.Downloads,
	}
}

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show your search history, most recent first",
		Flags: withUser(
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries (0 for all)",
			},
			jsonFlag(),
		),
		Action: r.History,
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an empty playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     userFlags(),
				Action:    r.PlaylistCreate,
			},
			{
				Name:  "add",
				Usage: "Add a catalog track to a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
					&cli.StringArg{Name: "track-id"},
				},
				Flags:  userFlags(),
				Action: r.PlaylistAdd,
			},
			{
				Name:   "list",
				Usage:  "List your playlists",
				Flags:  withUser(jsonFlag()),
				Action: r.PlaylistList,
			},
			{
				Name:      "show",
				Usage:     "Show the tracks of a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     withUser(jsonFlag()),
				Action:    r.PlaylistShow,
			},
			{
				Name:      "export",
				Usage:     "Export a playlist, or every playlist with --all",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags: withUser(
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, txt or html",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: current directory, or mymusic_export_<epoch> with --all)",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every playlist and write a manifest",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent writers for --all",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "Write a single playlist to stdout instead of a file",
					},
				),
				Action: r.PlaylistExport,
			},
		},
	}
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Open the embedded player for a track URI in the browser",
		Arguments: []cli.Argument{&cli.StringArg{Name: "uri"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "embed",
				Usage: "Print the iframe HTML instead of opening a browser",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Use the compact player height with --embed",
			},
		},
		Action: r.Play,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from [server] config)",
			},
		},
		Action: r.Serve,
	}
}
