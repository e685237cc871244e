package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/briandowns/spinner"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	urfaveCli "github.com/urfave/cli/v2"
	cwConfig "github.com/usecakework/monolog-viewer/lib/config"
	"github.com/usecakework/monolog-viewer/lib/frontendclient"
	"github.com/usecakework/monolog-viewer/lib/types"
)

const defaultServerURL = "http://localhost:8080"

var configFile string

func main() {
	app := &urfaveCli.App{
		Name:     "monolog",
		Usage:    "Browse the Monolog log table from the terminal",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Flags: []urfaveCli.Flag{
			&urfaveCli.BoolFlag{Name: "verbose", Hidden: true},
			&urfaveCli.StringFlag{
				Name:        "config",
				Usage:       "path to the credentials file (default ~/.monolog/config.json)",
				Destination: &configFile,
			},
		},
		Before: func(cCtx *urfaveCli.Context) error {
			if !cCtx.Bool("verbose") {
				log.SetLevel(log.ErrorLevel)
			} else {
				log.SetLevel(log.DebugLevel)
			}

			viper.SetEnvPrefix("MONOLOG")
			viper.AutomaticEnv()

			if configFile == "" {
				path, err := cwConfig.DefaultConfigPath()
				if err != nil {
					return err
				}
				configFile = path
			}
			log.Debug("config file: " + configFile)
			return nil
		},
		Commands: []*urfaveCli.Command{
			{
				Name:      "login",
				Usage:     "Save the viewer URL and an access token",
				UsageText: "monolog login --token TOKEN [--url URL]",
				Flags: []urfaveCli.Flag{
					&urfaveCli.StringFlag{Name: "token", Usage: "JWT carrying the manage:options scope", Required: true},
					&urfaveCli.StringFlag{Name: "url", Usage: "viewer base URL"},
				},
				Action: func(cCtx *urfaveCli.Context) error {
					if err := login(configFile, cCtx.String("url"), cCtx.String("token")); err != nil {
						return fmt.Errorf("Error logging in: %w", err)
					}
					fmt.Println("You are logged in 📜")
					return nil
				},
			},
			{
				Name:      "logs",
				Usage:     "List one page of log entries",
				UsageText: "monolog logs [--orderby COLUMN] [--order asc|desc] [--page N] [--per-page N]",
				Flags: []urfaveCli.Flag{
					&urfaveCli.StringFlag{Name: "orderby", Usage: "level, time, message, channel or app"},
					&urfaveCli.StringFlag{Name: "order", Usage: "asc or desc"},
					&urfaveCli.IntFlag{Name: "page", Value: 1},
					&urfaveCli.IntFlag{Name: "per-page", Usage: "rows per page (server default when unset)"},
				},
				Action: func(cCtx *urfaveCli.Context) error {
					config, err := cwConfig.LoadConfig(configFile)
					if err != nil {
						return fmt.Errorf("Could not load config file: %w", err)
					}

					client := frontendclient.New(serverURL(config), credentialsProvider(config))

					ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt)
					defer stop()

					s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
					s.Start()
					vm, err := fetchLogs(ctx, client, types.GetLogsRequest{
						OrderBy: cCtx.String("orderby"),
						Order:   cCtx.String("order"),
						Page:    cCtx.Int("page"),
						PerPage: cCtx.Int("per-page"),
					})
					s.Stop()
					if err != nil {
						return fmt.Errorf("Could not get logs: %w", err)
					}

					renderLogs(os.Stdout, vm)
					return nil
				},
			},
			{
				Name:  "levels",
				Usage: "Show the severity levels and their icons",
				Action: func(cCtx *urfaveCli.Context) error {
					renderLevels(os.Stdout)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fetchLogs(ctx context.Context, client *frontendclient.Client, req types.GetLogsRequest) (*types.TableViewModel, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return client.GetLogs(ctx, req)
}

// serverURL prefers MONOLOG_URL over the URL saved at login.
func serverURL(config *cwConfig.Config) string {
	if url := viper.GetString("URL"); url != "" {
		return url
	}
	if config.ServerURL != "" {
		return config.ServerURL
	}
	return defaultServerURL
}
