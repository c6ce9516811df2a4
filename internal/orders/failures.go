package orders

import "fmt"

type FailureKind string

const (
	FailInvalidInput                FailureKind = "InvalidInput"
	FailProductNotFound             FailureKind = "ProductNotFound"
	FailInsufficientStock           FailureKind = "InsufficientStock"
	FailDependencyUnavailable       FailureKind = "DependencyUnavailable"
	FailDependencyContractViolation FailureKind = "DependencyContractViolation"
	FailPersistenceError            FailureKind = "PersistenceError"
)

// Retriable reports whether the caller may retry the same request unchanged.
func (k FailureKind) Retriable() bool {
	return k == FailDependencyUnavailable || k == FailPersistenceError
}

// Failure is the only error type that crosses the orchestrator boundary.
// OrderID carries the audit row id when a business rejection was persisted.
type Failure struct {
	Kind    FailureKind
	Message string
	OrderID string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }
