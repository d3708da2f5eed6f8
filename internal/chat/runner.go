package chat

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"gpt-cli/internal/color"
	"gpt-cli/pkg/logging/logging"
)

// Runner drives a session through one of three modes:
//
//   - one-shot: a message was passed on the command line; one exchange, done
//   - batch: input is not an interactive terminal; the whole input is one
//     user turn, the reply is printed, done
//   - interactive: prompt, read a line, exchange, repeat until EOF
//
// Whether input is an interactive terminal is injected as a capability flag;
// the runner never probes file descriptors itself.
type Runner struct {
	Session *Session

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Interactive marks the input source as an interactive terminal.
	Interactive bool

	// Echo prints the input text before the reply in batch mode and for an
	// initial blob. Cleared by --silent.
	Echo bool

	// Initial is a pre-read input blob (a file argument). In batch mode it
	// replaces reading In; in interactive mode it is sent as the first turn
	// before the prompt loop starts.
	Initial string

	// Prompt is written before each interactive read.
	Prompt string
}

// Run drives one conversation to completion. A non-empty message selects
// one-shot mode and is terminal after a single exchange.
func (r *Runner) Run(ctx context.Context, message string) error {
	if message != "" {
		reply, err := r.Session.Send(ctx, message)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.Out, reply)
		return nil
	}

	if !r.Interactive {
		return r.runBatch(ctx)
	}
	return r.runInteractive(ctx)
}

func (r *Runner) runBatch(ctx context.Context) error {
	blob := r.Initial
	if blob == "" {
		raw, err := io.ReadAll(r.In)
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		blob = string(raw)
	}

	// Echo the input as-is, no added newline, so the reply follows it the
	// way the terminal would have shown it.
	if r.Echo {
		fmt.Fprint(r.Out, blob)
	}

	reply, err := r.Session.Send(ctx, blob)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, reply)
	return nil
}

func (r *Runner) runInteractive(ctx context.Context) error {
	logger := logging.L(ctx)

	if r.Initial != "" {
		if r.Echo {
			fmt.Fprint(r.Out, r.Initial)
		}
		reply, err := r.Session.Send(ctx, r.Initial)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			r.reportTurnError(logger, err)
		} else {
			fmt.Fprintln(r.Out, reply)
		}
	}

	// Lines arrive over a channel so the loop can observe cancellation
	// while blocked at the prompt; an interrupt must not wait for the user
	// to press enter.
	lines := NewLineReader(r.In)
	events := make(chan lineEvent)
	go func() {
		for {
			text, ok := lines.Next()
			select {
			case events <- lineEvent{text: text, ok: ok}:
			case <-ctx.Done():
				return
			}
			if !ok {
				return
			}
		}
	}()

	for {
		// An interrupt wins over a line that is already waiting.
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "interrupted")
		}

		fmt.Fprint(r.Out, r.Prompt)

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "interrupted")
		case ev := <-events:
			if !ev.ok {
				logger.Debug("end of input")
				return errors.Wrap(lines.Err(), "read input")
			}

			reply, err := r.Session.Send(ctx, ev.text)
			if err != nil {
				// An interrupt mid-request ends the whole session; any
				// other failed turn is reported and the loop keeps going.
				if ctx.Err() != nil {
					return err
				}
				r.reportTurnError(logger, err)
				continue
			}
			fmt.Fprintln(r.Out, reply)
		}
	}
}

type lineEvent struct {
	text string
	ok   bool
}

func (r *Runner) reportTurnError(logger *zap.Logger, err error) {
	logger.Debug("turn failed", zap.Error(err))
	fmt.Fprintln(r.ErrOut, color.YellowString(fmt.Sprintf("error: %v", err)))
}
