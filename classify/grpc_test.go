package classify

import (
	"errors"
	"testing"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestGRPCClassify(t *testing.T) {
	c := GRPC()

	tests := []struct {
		code codes.Code
		want Kind
	}{
		{codes.ResourceExhausted, Throttling},
		{codes.Unavailable, Transient},
		{codes.DeadlineExceeded, Transient},
		{codes.Internal, Transient},
		{codes.NotFound, NotFound},
		{codes.AlreadyExists, ResourceConflict},
		{codes.Aborted, ResourceConflict},
		{codes.FailedPrecondition, ResourceConflict},
		{codes.InvalidArgument, InvalidInput},
		{codes.OutOfRange, InvalidInput},
		{codes.PermissionDenied, PermissionDenied},
		{codes.Unauthenticated, PermissionDenied},
		{codes.DataLoss, Fatal},
		{codes.Unimplemented, Fatal},
	}

	for _, tt := range tests {
		err := status.Error(tt.code, "test")
		if got := c.Classify(err); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if got := c.Classify(errors.New("not a status")); got != Fatal {
		t.Errorf("Classify(non-status error) = %v, want fatal", got)
	}
}

func TestGRPCRetryAfter(t *testing.T) {
	st := status.New(codes.ResourceExhausted, "slow down")
	withInfo, err := st.WithDetails(&errdetails.RetryInfo{
		RetryDelay: durationpb.New(3 * time.Second),
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := GRPCRetryAfter(withInfo.Err()); got != 3*time.Second {
		t.Errorf("GRPCRetryAfter() = %v, want 3s", got)
	}

	if got := GRPCRetryAfter(status.Error(codes.Unavailable, "no details")); got != 0 {
		t.Errorf("GRPCRetryAfter(no details) = %v, want 0", got)
	}
	if got := GRPCRetryAfter(errors.New("not a status")); got != 0 {
		t.Errorf("GRPCRetryAfter(non-status) = %v, want 0", got)
	}
}
