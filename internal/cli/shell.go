package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"inventoryTracker/internal/logger"
)

func shellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session; type 'help' for commands, 'exit' to quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:            "inventory> ",
				HistoryFile:       historyFile(),
				InterruptPrompt:   "^C",
				EOFPrompt:         "exit",
				HistorySearchFold: true,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize readline: %w", err)
			}
			defer rl.Close()

			prev := app.Prompt
			app.Prompt = &ReadlinePrompter{rl: rl}
			defer func() { app.Prompt = prev }()

			next := func() (string, error) {
				rl.SetPrompt(shellPrompt(app))
				return rl.Readline()
			}
			return RunShell(cmd.Context(), app, next, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".inventory_history")
}

func shellPrompt(app *App) string {
	if app.session != nil {
		return "\033[1;36m" + app.session.Username + ">\033[0m "
	}
	return "\033[1;36minventory>\033[0m "
}

// RunShell executes lines from next until it reports io.EOF, an interrupt or
// the user types exit. The session lives in memory for the duration of the
// shell; a session saved by `login` is picked up at start.
func RunShell(ctx context.Context, app *App, next func() (string, error), out, errOut io.Writer) error {
	app.interactive = true
	defer func() {
		app.interactive = false
		app.session = nil
	}()
	if err := app.open(); err != nil {
		return err
	}
	if s, err := app.tokens().Load(); err == nil {
		if s, err = app.service.Resume(ctx, s); err == nil {
			app.session = s
		}
	}

	fmt.Fprintln(out, "Inventory Management shell. Type 'help' for commands, 'exit' to quit.")
	for {
		line, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintln(errOut, "Input Error: "+err.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch strings.ToLower(args[0]) {
		case "exit", "quit", `\q`:
			return nil
		}

		root := NewRootCmd(app)
		root.SetArgs(args)
		root.SetOut(out)
		root.SetErr(errOut)
		if err := root.ExecuteContext(ctx); err != nil {
			logger.Debugf("shell command %q: %v", args[0], err)
			fmt.Fprintln(errOut, Describe(err))
		}
	}
}

// splitArgs splits a shell line on spaces, keeping single- or double-quoted
// runs together so product names may contain spaces.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}

// ReadlinePrompter reads answers from the terminal. The zero value creates its
// readline instance on first use.
type ReadlinePrompter struct {
	rl    *readline.Instance
	owned bool
}

func (p *ReadlinePrompter) instance() (*readline.Instance, error) {
	if p.rl != nil {
		return p.rl, nil
	}
	rl, err := readline.NewEx(&readline.Config{DisableAutoSaveHistory: true})
	if err != nil {
		return nil, err
	}
	p.rl, p.owned = rl, true
	return rl, nil
}

func (p *ReadlinePrompter) Line(prompt string) (string, error) {
	rl, err := p.instance()
	if err != nil {
		return "", err
	}
	rl.SetPrompt(prompt)
	return rl.Readline()
}

func (p *ReadlinePrompter) Secret(prompt string) (string, error) {
	rl, err := p.instance()
	if err != nil {
		return "", err
	}
	b, err := rl.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Close releases a readline instance created by the prompter itself.
func (p *ReadlinePrompter) Close() error {
	if p.rl == nil || !p.owned {
		return nil
	}
	err := p.rl.Close()
	p.rl = nil
	return err
}
