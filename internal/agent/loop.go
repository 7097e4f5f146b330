package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Runner drives one question through the reasoning loop: ask the model,
// execute the tool it selects, feed the result back, repeat until the
// model produces a plain answer or the tool-call budget runs out. One
// model call or one tool call at a time, strictly sequential.
type Runner struct {
	model        model.ToolCallingChatModel
	tools        map[string]tool.InvokableTool
	infos        []*schema.ToolInfo
	maxToolCalls int
	onStep       func(Step)
}

type RunnerOption func(*Runner)

// WithStepObserver registers a callback invoked after every step, in
// order. Observability only; errors in the callback are not handled.
func WithStepObserver(fn func(Step)) RunnerOption {
	return func(r *Runner) {
		r.onStep = fn
	}
}

// WithMaxToolCalls overrides the tool-call budget.
func WithMaxToolCalls(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.maxToolCalls = n
		}
	}
}

// NewRunner binds the tool set to the chat model. Every tool must be
// invokable and carry a unique name.
func NewRunner(ctx context.Context, chatModel model.ToolCallingChatModel, toolSet []tool.BaseTool, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		tools:        make(map[string]tool.InvokableTool, len(toolSet)),
		maxToolCalls: 8,
	}

	for _, tl := range toolSet {
		info, err := tl.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tool info: %w", err)
		}
		invokable, ok := tl.(tool.InvokableTool)
		if !ok {
			return nil, fmt.Errorf("tool %s is not invokable", info.Name)
		}
		if _, exists := r.tools[info.Name]; exists {
			return nil, fmt.Errorf("duplicate tool name %s", info.Name)
		}
		r.tools[info.Name] = invokable
		r.infos = append(r.infos, info)
	}

	bound, err := chatModel.WithTools(r.infos)
	if err != nil {
		return nil, fmt.Errorf("failed to bind tools to model: %w", err)
	}
	r.model = bound

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Ask runs one question to completion and returns the final answer with
// the step trace. On failure the partial trace is still returned so the
// caller can see how far the run got.
func (r *Runner) Ask(ctx context.Context, question string) (*Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	msgs, err := renderMessages(ctx, question, r.infos)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	session := &Result{}
	executed := 0
	var pending []schema.ToolCall
	st := stateAwaitingModel

	for {
		switch st {
		case stateAwaitingModel:
			out, genErr := r.model.Generate(ctx, msgs)
			if genErr != nil {
				return session, r.fail(session, fmt.Errorf("%w: %v", ErrModelInvocation, genErr))
			}

			if len(out.ToolCalls) > 0 {
				pending = out.ToolCalls
				msgs = append(msgs, out)
				st = stateExecutingTool
				continue
			}

			answer := strings.TrimSpace(out.Content)
			if answer == "" {
				return session, r.fail(session, fmt.Errorf("%w: neither tool call nor answer", ErrMalformedToolOutput))
			}
			session.Answer = answer
			r.record(session, Step{Kind: StepFinalAnswer, Answer: answer})
			st = stateDone

		case stateExecutingTool:
			for _, call := range pending {
				// Calls that fit the budget run; the first one beyond it
				// ends the run.
				if executed >= r.maxToolCalls {
					return session, r.fail(session, fmt.Errorf("%w: model requested call %d of a maximum %d",
						ErrIterationBudgetExceeded, executed+1, r.maxToolCalls))
				}
				name := call.Function.Name
				tl, ok := r.tools[name]
				if !ok {
					return session, r.fail(session, fmt.Errorf("%w: unknown tool %q", ErrMalformedToolOutput, name))
				}

				result, runErr := tl.InvokableRun(ctx, call.Function.Arguments)
				if runErr != nil {
					return session, r.fail(session, fmt.Errorf("%w: tool %s rejected arguments: %v",
						ErrMalformedToolOutput, name, runErr))
				}
				executed++

				r.record(session, Step{
					Kind:      StepToolCall,
					Tool:      name,
					Arguments: call.Function.Arguments,
					Result:    result,
				})
				msgs = append(msgs, schema.ToolMessage(result, call.ID))
			}
			pending = nil
			st = stateAwaitingModel

		case stateDone:
			return session, nil
		}
	}
}

func (r *Runner) record(session *Result, step Step) {
	session.Steps = append(session.Steps, step)
	if r.onStep != nil {
		r.onStep(step)
	}
}

func (r *Runner) fail(session *Result, err error) error {
	r.record(session, Step{Kind: StepFailure, Failure: err.Error()})
	return err
}
