package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/casadoconstrutor/storefront-acceptance/internal/browser"
	internalcli "github.com/casadoconstrutor/storefront-acceptance/internal/cli"
	"github.com/casadoconstrutor/storefront-acceptance/internal/config"
	"github.com/casadoconstrutor/storefront-acceptance/internal/database"
	"github.com/casadoconstrutor/storefront-acceptance/internal/handlers"
	"github.com/casadoconstrutor/storefront-acceptance/internal/repository"
	"github.com/casadoconstrutor/storefront-acceptance/internal/scenario"
	"github.com/casadoconstrutor/storefront-acceptance/internal/services"
)

var version = "0.1.0"

func configureLogging() error {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(parsed)
	return nil
}

// connectHistory opens the run history database when it is configured
func connectHistory() (services.RunService, func(), error) {
	if !config.PostgresEnabled(os.Getenv) {
		logrus.Info("POSTGRES_HOSTNAME not set, run history disabled")
		return nil, func() {}, nil
	}

	if err := database.Connect(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logrus.Info("connected to run history database")

	return services.NewRunService(repository.NewRunRepository()), func() { database.Close() }, nil
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run acceptance scenarios against the storefront",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "scenario", Aliases: []string{"s"}, Usage: "catalog scenario to run (repeatable)"},
			&cli.StringSliceFlag{Name: "journey", Aliases: []string{"j"}, Usage: "YAML journey file to run (repeatable)"},
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Usage: "scenarios to run at once (default STOREFRONT_PARALLEL)"},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadStorefrontConfig(os.Getenv)
			if err != nil {
				return err
			}
			if c.IsSet("parallel") {
				if c.Int("parallel") < 1 {
					return fmt.Errorf("--parallel must be positive, got %d", c.Int("parallel"))
				}
				cfg.Parallel = c.Int("parallel")
			}
			if c.Bool("headed") {
				cfg.Headless = false
			}

			selected, err := internalcli.SelectScenarios(c.StringSlice("scenario"), c.StringSlice("journey"))
			if err != nil {
				return err
			}

			runs, closeHistory, err := connectHistory()
			if err != nil {
				return err
			}
			defer closeHistory()

			launch := browser.DefaultLaunchOptions()
			launch.Browser = cfg.Browser
			launch.Headless = cfg.Headless
			launch.SlowMo = cfg.SlowMo
			engine, err := browser.Launch(launch)
			if err != nil {
				return err
			}
			defer func() {
				if err := engine.Close(); err != nil {
					logrus.WithError(err).Warn("failed to close browser")
				}
			}()

			opts := []scenario.RunnerOption{scenario.WithLogger(logrus.StandardLogger())}
			if runs != nil {
				opts = append(opts, scenario.WithRunService(runs))
			}
			runner := scenario.NewRunner(engine, cfg, opts...)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return internalcli.RunScenarios(ctx, runner, selected, cfg.Parallel, c.App.Writer)
		},
	}
}

// ListCommand returns the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the built-in scenarios",
		Action: func(c *cli.Context) error {
			internalcli.ListScenarios(c.App.Writer)
			return nil
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the playwright driver and the configured browser",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadStorefrontConfig(os.Getenv)
			if err != nil {
				return err
			}
			return browser.Install(cfg.Browser)
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the run history report server",
		Action: func(c *cli.Context) error {
			if err := database.Connect(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()
			logrus.Info("connected to database successfully")

			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			cfg, err := config.LoadStorefrontConfig(os.Getenv)
			if err != nil {
				return err
			}

			runs := services.NewRunService(repository.NewRunRepository())
			runsHandler, err := handlers.NewRunsHandler("templates/runs.html", runs, logrus.StandardLogger())
			if err != nil {
				return fmt.Errorf("failed to create runs handler: %w", err)
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: config.LoadServerConfig(os.Getenv),
				RunsHandler:  runsHandler,
				EvidenceDir:  cfg.EvidenceDir,
			})
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}
	if err := configureLogging(); err != nil {
		logrus.Fatal(err)
	}

	app := &cli.App{
		Name:    "storecheck",
		Usage:   "Browser acceptance checks for the storefront search",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ListCommand(),
			InstallCommand(),
			ServeCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}
