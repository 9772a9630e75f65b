package classify

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/gorilla/websocket"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestNetworkClassify(t *testing.T) {
	c := Network()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Fatal},
		{"timeout", timeoutError{}, Transient},
		{"wrapped timeout", fmt.Errorf("get: %w", timeoutError{}), Transient},
		{"op error conn reset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, Transient},
		{"conn refused", syscall.ECONNREFUSED, Transient},
		{"broken pipe", syscall.EPIPE, Transient},
		{"eof", io.EOF, Transient},
		{"unexpected eof", io.ErrUnexpectedEOF, Transient},
		{"ws service restart", &websocket.CloseError{Code: websocket.CloseServiceRestart}, Transient},
		{"ws try again later", &websocket.CloseError{Code: websocket.CloseTryAgainLater}, Transient},
		{"ws going away", &websocket.CloseError{Code: websocket.CloseGoingAway}, Transient},
		{"ws abnormal", &websocket.CloseError{Code: websocket.CloseAbnormalClosure}, Transient},
		{"ws policy violation", &websocket.CloseError{Code: websocket.ClosePolicyViolation}, Fatal},
		{"plain error", errors.New("boom"), Fatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
