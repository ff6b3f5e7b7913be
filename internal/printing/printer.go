package printing

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Printer sends rendered receipt text to a native print command. When the
// command is missing or fails, Print reports it so the caller can fall back
// to handing the text to the clipboard instead.
type Printer struct {
	command string
	args    []string
}

// NewPrinter builds a printer around a command line like "lp" or
// "lpr -P receipt-printer". The receipt text is piped to stdin.
func NewPrinter(commandLine string) *Printer {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		fields = []string{"lp"}
	}
	return &Printer{command: fields[0], args: fields[1:]}
}

// Print pipes text into the configured command.
func (p *Printer) Print(ctx context.Context, text string) error {
	if _, err := exec.LookPath(p.command); err != nil {
		return fmt.Errorf("print command %q not available: %w", p.command, err)
	}
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		zap.S().Warnw("print command failed", "command", p.command, "output", string(out), "err", err)
		return fmt.Errorf("print command %q failed: %w", p.command, err)
	}
	return nil
}
