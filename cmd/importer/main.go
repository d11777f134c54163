// Command importer loads the open-data vehicle registry into the API.
// It reads a ZIP export (local file or URL), maps the registry columns to
// vehicle payloads and pushes them through POST /vehicles/add.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mkoren/drivetrack/internal/registry"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

// newApp builds the CLI definition. Split from main so tests can inspect
// the flag set without running a process.
func newApp() *cli.App {
	return &cli.App{
		Name:  "importer",
		Usage: "import the vehicle registry export into the API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Usage:    "registry ZIP export, local path or http(s) URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "api",
				Usage: "base URL of the API",
				Value: "http://localhost:8080",
			},
			&cli.StringFlag{
				Name:     "token",
				Usage:    "bearer token for the API",
				EnvVars:  []string{"IMPORTER_TOKEN"},
				Required: true,
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "vehicles pushed between progress reports",
				Value: registry.DefaultBatchSize,
			},
		},
		Action: runImport,
	}
}

func runImport(c *cli.Context) error {
	source := c.String("source")

	path := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		slog.Info("downloading registry export", "url", source)
		tmp, err := registry.Download(c.Context, source)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)
		path = tmp
	}

	records, err := registry.ParseZip(path)
	if err != nil {
		return err
	}
	slog.Info("parsed registry export", "records", len(records))

	payloads, skipped := registry.Payloads(records)
	if skipped > 0 {
		slog.Warn("skipped unmappable records", "skipped", skipped)
	}
	if len(payloads) == 0 {
		return fmt.Errorf("no usable records in %s", source)
	}

	client := registry.NewClient(c.String("api"), c.String("token"))
	report, err := client.Push(c.Context, payloads, c.Int("batch-size"), func(done, total int) {
		slog.Info("pushing vehicles", "done", done, "total", total)
	})
	if err != nil {
		return err
	}

	slog.Info("import finished", "pushed", report.Pushed, "failed", report.Failed, "skipped", skipped)
	return nil
}
