package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/quantfold/marketagent/internal/agent"
	"github.com/quantfold/marketagent/internal/config"
	"github.com/quantfold/marketagent/internal/debug"
	"github.com/quantfold/marketagent/internal/llm"
	"github.com/quantfold/marketagent/internal/tools"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	mgr, cfg, err := config.Load()
	if err != nil {
		// No writable config dir; run on built-in defaults and environment.
		mgr = nil
		cfg = config.DefaultConfig()
	}

	rootCmd := &cobra.Command{
		Use:   "marketagent",
		Short: "marketagent - ask an LLM agent about the stock market",
		Long: `marketagent answers natural-language questions about stocks by letting a
language model call live market-data tools (last trade, aggregates, news,
financials) and synthesize the results into one answer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: an interactive session. Config file edits
			// between questions apply to the next one.
			ctx := context.Background()
			if mgr != nil {
				if err := mgr.Watch(ctx, nil); err != nil {
					return err
				}
			}
			for {
				question, err := PromptForQuestion()
				if err != nil {
					if isPromptAborted(err) {
						return nil
					}
					return err
				}
				if err := runAsk(mgr, effectiveConfig(cmd, mgr, cfg), question); err != nil {
					return err
				}
			}
		},
	}

	rootCmd.AddCommand(newAskCmd(mgr, cfg))
	rootCmd.AddCommand(newConfigCmd(mgr, cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Print the tool-call trace")
	rootCmd.PersistentFlags().IntVar(&cfg.MaxToolCalls, "max-tool-calls", cfg.MaxToolCalls, "Maximum tool calls per question")

	return rootCmd
}

// effectiveConfig layers the current on-disk config under the process
// environment, keeping any values set explicitly by flags. Without a
// manager the flag-bound config is already effective.
func effectiveConfig(cmd *cobra.Command, mgr *config.Manager, flagCfg *config.Config) *config.Config {
	if mgr == nil {
		return flagCfg
	}
	cfg := mgr.Effective()
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flagCfg.Verbose
	}
	if cmd.Flags().Changed("max-tool-calls") {
		cfg.MaxToolCalls = flagCfg.MaxToolCalls
	}
	return cfg
}

func isPromptAborted(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF)
}

// newAskCmd creates the ask command
func newAskCmd(mgr *config.Manager, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Ask one question and print the answer",
		Long: `Ask a single market question and print the agent's answer.
Example: marketagent ask "What is the latest stock price for AAPL?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(mgr, cfg, strings.Join(args, " "))
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("marketagent v1.0.0")
			fmt.Println("LLM agent over live market data")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(mgr *config.Manager, cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mgr != nil {
				fmt.Println("config file:", mgr.Path())
			}
			shown := *cfg
			shown.OpenAIAPIKey = redact(shown.OpenAIAPIKey)
			shown.DeepSeekAPIKey = redact(shown.DeepSeekAPIKey)
			shown.PolygonAPIKey = redact(shown.PolygonAPIKey)
			data, err := json.MarshalIndent(shown, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.ValidateCredentials(); err != nil {
				return err
			}
			fmt.Println("configuration OK")
			return nil
		},
	})

	return configCmd
}

// runAsk executes one agent invocation end to end.
func runAsk(mgr *config.Manager, cfg *config.Config, question string) error {
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Credential provisioning: config file or environment first,
	// interactive fallback. An interactively entered key is persisted so
	// the next run skips the prompt.
	if strings.TrimSpace(cfg.PolygonAPIKey) == "" {
		key, err := PromptForAPIKey()
		if err != nil {
			return config.ErrCredentialMissing
		}
		cfg.PolygonAPIKey = key
		if mgr != nil {
			saved := mgr.Get()
			saved.PolygonAPIKey = key
			if err := mgr.Update(saved); err == nil {
				fmt.Println("API key saved to", mgr.Path())
			}
		}
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return err
	}

	if dbg := debug.NewDebugger(cfg); dbg.IsEnabled() {
		if err := dbg.Initialize(); err != nil {
			return err
		}
		fmt.Println("debug server:", dbg.DebugURL())
	}

	chatModel, err := llm.NewChatModel(ctx, cfg)
	if err != nil {
		return err
	}

	opts := []agent.RunnerOption{
		agent.WithMaxToolCalls(cfg.MaxToolCalls),
	}
	if cfg.Verbose {
		opts = append(opts, agent.WithStepObserver(func(step agent.Step) {
			fmt.Println(RenderStep(step))
		}))
	}

	runner, err := agent.NewRunner(ctx, chatModel, tools.NewToolkit(cfg), opts...)
	if err != nil {
		return err
	}

	fmt.Println(RenderTitle(question))
	result, err := runner.Ask(ctx, question)
	if err != nil {
		fmt.Println(RenderError(err))
		return err
	}

	fmt.Println(RenderAnswer(result.Answer))
	return nil
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
