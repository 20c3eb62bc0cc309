// Package results carries the generic success/failure pair returned by
// service operations. A populated Failure is a handled business outcome the
// caller can act on; transport and storage errors travel separately as error
// values.
package results

// OperationResult holds either a success or a failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// IsSuccess reports whether the operation produced a success payload.
func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

// IsFailure reports whether the operation produced a failure payload.
func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }

// Success wraps a success payload.
func Success[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// Failure wraps a failure payload.
func Failure[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}
