package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-cv/internal/chat"
	"github.com/jonathan/portfolio-cv/internal/config"
	"github.com/jonathan/portfolio-cv/internal/llm"
	"github.com/jonathan/portfolio-cv/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the portfolio assistant questions in the terminal",
	Long: "Starts an interactive conversation with the AI assistant, which answers questions about " +
		"the portfolio using only its data. Type \"exit\" or send EOF to quit. Requires GEMINI_API_KEY.",
	Args: cobra.NoArgs,
	RunE: runChat,
}

var (
	chatDataFile string
	chatTier     string
)

// newLLMClient creates the model client; replaced in tests
var newLLMClient = llm.NewClient

func init() {
	chatCmd.Flags().StringVarP(&chatDataFile, "data", "d", "", "Path to portfolio data file (JSON or YAML)")
	chatCmd.Flags().StringVar(&chatTier, "tier", string(llm.TierStandard), "Model tier: lite, standard or advanced")

	rootCmd.AddCommand(chatCmd)
}

// newAssistant connects to the model provider and builds an assistant for p. The caller
// closes the returned client.
func newAssistant(ctx context.Context, c config.Config, p *types.Portfolio, tier llm.ModelTier) (*chat.Assistant, llm.Client, error) {
	if c.APIKey == "" {
		return nil, nil, fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}

	llmConfig := llm.DefaultConfig()
	if c.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, c.Model)
	}
	client, err := newLLMClient(ctx, llmConfig, c.APIKey)
	if err != nil {
		return nil, nil, err
	}

	assistant, err := chat.NewAssistant(client, p, chat.WithLogger(logger), chat.WithTier(tier))
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Debug("assistant ready", zap.String("model", client.GetModel(tier)))
	return assistant, client, nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	tier := llm.ModelTier(chatTier)
	switch tier {
	case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
	default:
		return fmt.Errorf("unknown tier %q: use lite, standard or advanced", chatTier)
	}

	p, err := loadPortfolio(stringFlag(cmd, "data", chatDataFile, cfg.DataPath))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	assistant, client, err := newAssistant(ctx, cfg, p, tier)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out := cmd.OutOrStdout()
	greeting := chat.Greeting(p)
	session := chat.NewSession(greeting)
	_, _ = fmt.Fprintf(out, "%s\n\n", greeting)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		reply, err := assistant.Send(ctx, session, text)
		if err != nil {
			var replyErr *chat.ReplyError
			if errors.As(err, &replyErr) {
				_, _ = fmt.Fprintf(out, "%s\n\n", replyErr.Reply)
				continue
			}
			return err
		}
		_, _ = fmt.Fprintf(out, "%s\n\n", reply)
	}
	return scanner.Err()
}
