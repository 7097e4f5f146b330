package agent

// StepKind tags the variants of one agent step.
type StepKind string

const (
	StepToolCall    StepKind = "tool_call"
	StepFinalAnswer StepKind = "final_answer"
	StepFailure     StepKind = "failure"
)

// Step is one entry in the invocation trace: a tool round trip, the final
// answer, or the failure that ended the run.
type Step struct {
	Kind StepKind `json:"kind"`

	// Tool round trip
	Tool      string `json:"tool,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Result    string `json:"result,omitempty"`

	// Terminal content
	Answer  string `json:"answer,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// Result is what one invocation returns: the final answer and the ordered
// trace of every step taken to produce it.
type Result struct {
	Answer string `json:"answer"`
	Steps  []Step `json:"steps"`
}

// state is the reasoning loop's position between transitions.
type state int

const (
	stateAwaitingModel state = iota
	stateExecutingTool
	stateDone
	stateFailed
)
