package classify

import (
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/gorilla/websocket"
)

// Network classifies transport-level errors: timeouts, dropped connections,
// and WebSocket close frames that signal the peer will come back.
//
// Everything it recognizes is Transient; anything else is Fatal so that a
// code-table classifier composed via First can have the next word.
func Network() Classifier {
	return Func(func(err error) Kind {
		if err == nil {
			return Fatal
		}

		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return Transient
		}

		var ce *websocket.CloseError
		if errors.As(err, &ce) {
			switch ce.Code {
			case websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseServiceRestart,
				websocket.CloseTryAgainLater:
				return Transient
			}
			return Fatal
		}

		switch {
		case errors.Is(err, syscall.ECONNRESET),
			errors.Is(err, syscall.ECONNREFUSED),
			errors.Is(err, syscall.ECONNABORTED),
			errors.Is(err, syscall.EPIPE),
			errors.Is(err, syscall.ETIMEDOUT):
			return Transient
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return Transient
		}

		return Fatal
	})
}
