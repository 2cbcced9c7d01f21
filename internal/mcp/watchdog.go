package mcp

import (
	"context"
	"os"
	"time"

	"github.com/martinmagala/repo2prompt/internal/logging"
)

// WatchParent monitors the parent process in a background goroutine and
// calls cancel when it dies, so a disconnected host does not leave a zombie
// server behind. It must not read stdin: the stdio transport owns it.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "was_pid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}
