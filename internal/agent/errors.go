package agent

import "errors"

var (
	// ErrEmptyQuestion rejects blank input before the model is called.
	ErrEmptyQuestion = errors.New("question must not be empty")

	// ErrModelInvocation wraps a fault from the chat model itself.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrIterationBudgetExceeded ends the run when the model requests more
	// tool calls than the configured maximum.
	ErrIterationBudgetExceeded = errors.New("tool call budget exceeded")

	// ErrMalformedToolOutput ends the run when the model's output is
	// neither a well-formed tool call nor a final answer.
	ErrMalformedToolOutput = errors.New("malformed model output")
)
