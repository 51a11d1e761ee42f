package share

import (
	"context"
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"artboard/internal/state"
)

// Join connects to a host's mirror and hands every op to apply until
// the connection drops or ctx is cancelled. apply runs on the reading
// goroutine; UI callers must hop to their own thread.
func Join(ctx context.Context, url string, apply func(state.Op)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer conn.Close()
	log.Printf("[SHARE] Joined %s", url)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var op state.Op
		if err := conn.ReadJSON(&op); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return fmt.Errorf("host %s closed the session", url)
			}
			return fmt.Errorf("read from %s: %w", url, err)
		}
		apply(op)
	}
}
