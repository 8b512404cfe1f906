package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-cv/internal/chat"
	"github.com/jonathan/portfolio-cv/internal/llm"
	"github.com/jonathan/portfolio-cv/internal/rendering"
	"github.com/jonathan/portfolio-cv/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long: "Start an HTTP server with the portfolio page, the CV download at /cv.pdf, the portfolio " +
		"data API, and, when GEMINI_API_KEY is set, the chat assistant.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveHost     string
	servePort     int
	serveDataFile string
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to listen on (default all)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveDataFile, "data", "d", "", "Path to portfolio data file (JSON or YAML)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	c := cfg
	c.Host = stringFlag(cmd, "host", serveHost, c.Host)
	c.Port = intFlag(cmd, "port", servePort, c.Port)

	p, err := loadPortfolio(stringFlag(cmd, "data", serveDataFile, c.DataPath))
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var assistant *chat.Assistant
	if c.APIKey != "" {
		a, client, err := newAssistant(ctx, c, p, llm.TierStandard)
		if err != nil {
			return fmt.Errorf("failed to create assistant: %w", err)
		}
		defer func() { _ = client.Close() }()
		assistant = a
	} else {
		logger.Warn("GEMINI_API_KEY not set; chat is disabled")
	}

	srv, err := server.New(server.Options{
		Config:    c,
		Portfolio: p,
		Composer: rendering.NewComposer(
			rendering.WithMaxProjects(c.MaxProjects),
			rendering.WithLogger(logger),
		),
		Assistant: assistant,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving portfolio", zap.String("name", p.Profile.Name), zap.String("addr", c.Addr()))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s's portfolio on http://%s\n", p.Profile.Name, displayAddr(c.Addr()))
	return srv.Run(ctx)
}

// displayAddr replaces an empty host with localhost
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
