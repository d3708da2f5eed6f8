package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"gpt-cli/internal/chat"
	"gpt-cli/internal/color"
	"gpt-cli/internal/config"
	"gpt-cli/internal/llm"
	"gpt-cli/pkg/logging/logging"
)

type options struct {
	Message      string `short:"m" long:"message" description:"Send a single message and print the reply"`
	Instructions string `short:"i" long:"instructions" description:"Instructions to give the model as a system prompt"`
	Silent       bool   `short:"s" long:"silent" description:"Do not print prompt input for stdin"`
	Debug        bool   `long:"debug" description:"Enable debug output"`

	Args struct {
		File string `positional-arg-name:"file" description:"File to read text from (default: stdin)"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run())
}

func run() (code int) {
	// Errors are reported as a single-line diagnostic; a panic must not
	// reach the user as a stack trace either.
	defer func() {
		if rec := recover(); rec != nil {
			logging.DefaultLogger().Error("panic recovered",
				zap.Any("error", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			fmt.Fprintf(os.Stderr, "error: internal failure: %v\n", rec)
			code = 1
		}
	}()

	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	logger := logging.NewLogger(opts.Debug)
	defer logger.Sync()

	if opts.Debug {
		logger.Debug("verbose output enabled", zap.Strings("argv", os.Args))
	}

	// Config is read once, before any network activity; a missing
	// credential dies here.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	logger.Debug("loaded config",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.String("user", cfg.User),
		zap.Int("timeout_seconds", cfg.TimeoutSeconds),
	)

	client, err := llm.NewClient(llm.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout(),
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if closer, ok := client.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	session := chat.NewSession(client, chat.NewRequestBuilder(chat.NewDefaults(cfg.Model, cfg.User)))
	if opts.Instructions != "" {
		logger.Debug("adding instructions", zap.String("instructions", opts.Instructions))
		session.AddSystemPrompt(opts.Instructions)
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	initial := ""
	if opts.Args.File != "" {
		blob, err := os.ReadFile(opts.Args.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		initial = string(blob)
		logger.Debug("reading from file", zap.String("file", opts.Args.File))
	}

	prompt := ">>> "
	if isatty.IsTerminal(os.Stdout.Fd()) {
		prompt = color.BlueString(prompt)
	}

	runner := &chat.Runner{
		Session:     session,
		In:          os.Stdin,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Interactive: interactive,
		Echo:        !opts.Silent,
		Initial:     initial,
		Prompt:      prompt,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	// The first interrupt terminates the process at once, whether it is
	// blocked at the prompt or mid-request. No partial-result recovery.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "error: interrupted")
		os.Exit(130)
	}()

	if err := runner.Run(ctx, opts.Message); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
