package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yigit/seasonledger/internal/bootstrap"
	"github.com/yigit/seasonledger/internal/db"
	"github.com/yigit/seasonledger/internal/pkg/logger"
	"github.com/yigit/seasonledger/internal/server"
)

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the YAML configuration file",
		Value:   filepath.Join("configs", "config.yaml"),
		EnvVars: []string{"CONFIG_PATH"},
	}

	app := &cli.App{
		Name:   "seasonledger",
		Usage:  "season, event and payment ledger API",
		Flags:  []cli.Flag{configFlag},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "migrate the database and start the HTTP API",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Flags:  []cli.Flag{configFlag},
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
	logger.Info().Msg("Application finished gracefully.")
}

func serve(c *cli.Context) error {
	srv, err := server.NewServer(c.Context, c.String("config"))
	if err != nil {
		return err
	}
	return srv.Run(c.Context)
}

func migrate(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	return bootstrap.RunMigrations(c.Context, database, lgr)
}
