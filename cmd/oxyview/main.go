// oxyview is a terminal chart viewer: it plots a JSONL sample file
// and supports interactive pan, zoom and tracking with the mouse and
// keyboard, following the file live as new samples are appended.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luoshushi/oxyplot/internal/config"
	"github.com/luoshushi/oxyplot/internal/observability"
	"github.com/luoshushi/oxyplot/internal/viewer"
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "oxyview - interactive terminal chart viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  oxyview [<samples.jsonl>]\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  <samples.jsonl>       JSONL file of samples, one object per line:\n")
		fmt.Fprintf(os.Stderr, "                        {\"series\": \"loss\", \"x\": 3, \"y\": 0.21}\n")
		fmt.Fprintf(os.Stderr, "                        The file is followed live as lines are appended.\n\n")
		fmt.Fprintf(os.Stderr, "Environment Variables:\n")
		fmt.Fprintf(os.Stderr, "  OXYVIEW_DEBUG         Enable debug logging (creates oxyview.debug.log)\n")
		fmt.Fprintf(os.Stderr, "  OXYVIEW_CONFIG_DIR    Override the configuration directory\n")
		fmt.Fprintf(os.Stderr, "  OXYVIEW_SENTRY_DSN    Enable error reporting to Sentry\n")
	}

	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		return 1
	}

	var writer io.Writer = io.Discard
	if os.Getenv("OXYVIEW_DEBUG") != "" {
		loggerFile, err := os.OpenFile(
			"oxyview.debug.log",
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0o644,
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			return 1
		}
		writer = loggerFile
		defer func() { _ = loggerFile.Close() }()
	}

	logger := observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(
			writer,
			&slog.HandlerOptions{Level: slog.LevelDebug},
		)),
		observability.Params{
			SentryDSN: os.Getenv("OXYVIEW_SENTRY_DSN"),
		},
	)
	defer logger.Flush(2 * time.Second)

	cfg := config.NewManager(nil, config.DefaultPath(), logger)

	samplePath := ""
	if flag.NArg() == 1 {
		samplePath = flag.Arg(0)
		if _, err := os.Stat(samplePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	m, err := viewer.New(samplePath, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error(fmt.Sprintf("oxyview: %v", err))
		return 1
	}
	return 0
}
