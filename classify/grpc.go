package classify

import (
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPC classifies gRPC status errors by their canonical code.
//
// The mapping follows the retryability guidance of the canonical code
// definitions: ResourceExhausted is throttling, Unavailable and friends are
// transient, and the caller-fault codes are terminal.
func GRPC() Classifier {
	return Func(func(err error) Kind {
		s, ok := status.FromError(err)
		if !ok || s == nil {
			return Fatal
		}
		switch s.Code() {
		case codes.ResourceExhausted:
			return Throttling
		case codes.Unavailable, codes.DeadlineExceeded, codes.Internal:
			return Transient
		case codes.NotFound:
			return NotFound
		case codes.AlreadyExists, codes.Aborted, codes.FailedPrecondition:
			return ResourceConflict
		case codes.InvalidArgument, codes.OutOfRange:
			return InvalidInput
		case codes.PermissionDenied, codes.Unauthenticated:
			return PermissionDenied
		default:
			return Fatal
		}
	})
}

// GRPCRetryAfter extracts the server-suggested retry delay from a gRPC
// status carrying RetryInfo details. Returns 0 when the error is not a
// status error or carries no RetryInfo.
func GRPCRetryAfter(err error) time.Duration {
	s, ok := status.FromError(err)
	if !ok || s == nil {
		return 0
	}
	for _, detail := range s.Details() {
		if info, ok := detail.(*errdetails.RetryInfo); ok {
			if d := info.GetRetryDelay(); d != nil {
				return d.AsDuration()
			}
		}
	}
	return 0
}
