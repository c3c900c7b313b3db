package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/email-insights/internal/analysis"
	"github.com/nhle/email-insights/internal/app"
	"github.com/nhle/email-insights/internal/credential"
	"github.com/nhle/email-insights/internal/mailbox"
	"github.com/nhle/email-insights/internal/model"
	"github.com/nhle/email-insights/internal/pipeline"
	"github.com/nhle/email-insights/internal/runner"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	engine := analysis.New(analysis.Config{
		APIKey:      loadAPIKey(),
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	})

	client := mailbox.NewClient(cfg.IMAP.Host, cfg.IMAP.Port)
	p := pipeline.New(pipeline.NewIMAP(client), engine)
	r := runner.New(p, client)

	defaults := model.FetchCriteria{
		Limit:      cfg.Fetch.Limit,
		UnreadOnly: cfg.Fetch.UnreadOnly,
	}

	program := tea.NewProgram(
		app.New(r, defaults),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running program: %v\n", err)
		os.Exit(1)
	}
}

// loadAPIKey reads the analysis API key from the environment, falling
// back to the system keyring. An empty key is tolerated here: the
// engine reports the auth failure per message instead of refusing to
// start, so the mailbox side stays usable.
func loadAPIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	key, err := credential.Get(credential.KeyOpenAIAPIKey)
	if err != nil {
		return ""
	}
	return key
}
