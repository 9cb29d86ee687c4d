package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"devconsole/log"
)

// Runner executes console lines. *cmd.Registry satisfies it.
type Runner interface {
	Run(line string) error
	Execute(line string)
}

// RunScript executes console lines read from r without a terminal. Blank
// lines and lines starting with '#' are skipped. Every entry published on
// hub while the script runs is written to out. With strict set, the first
// failing line stops the script and its error is returned; otherwise
// failures are only logged.
func RunScript(ctx context.Context, runner Runner, hub *log.Hub, r io.Reader, out io.Writer, strict bool) error {
	var writeErr error
	unsubscribe := hub.Subscribe(func(e log.Entry) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintln(out, e.String())
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		hub.Infof("> %s", line)
		if strict {
			if err := runner.Run(line); err != nil {
				hub.Errorf("[CONSOLE] %v", err)
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		} else {
			runner.Execute(line)
		}

		if writeErr != nil {
			return fmt.Errorf("failed to write output: %w", writeErr)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}
