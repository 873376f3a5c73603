package terminal

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
)

// Controller is the part of a session the console can steer.
type Controller interface {
	SetVisible(visible bool)
	Retry(ctx context.Context) bool
}

// Commands understood on the input stream, one per line.
const (
	CommandHide  = "h"
	CommandShow  = "s"
	CommandRetry = "r"
	CommandQuit  = "q"
)

// Run reads commands from in until quit, end of input or ctx is done.
func Run(ctx context.Context, in io.Reader, ctl Controller, logger *slog.Logger) error {
	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case line := <-lines:
			switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
			case "":
			case CommandHide:
				ctl.SetVisible(false)
			case CommandShow:
				ctl.SetVisible(true)
			case CommandRetry:
				if !ctl.Retry(ctx) {
					logger.Info("location request already in progress")
				}
			case CommandQuit:
				return nil
			default:
				logger.Warn("unknown command", "command", cmd)
			}
		}
	}
}
