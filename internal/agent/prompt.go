package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const systemTpl = `You are a market data assistant. Answer questions about
stocks using the provided tools; do not guess prices or fundamentals from
memory.

You have access to the following tools:
{tool_roster}

Call a tool when you need data. When you have enough information, reply
with a plain final answer that quotes the numbers you retrieved. If a tool
reports an error, you may try different arguments or a different tool, or
explain the failure to the user.

For your reference, the current date is {current_date}.`

// renderMessages formats the seed transcript: the instruction template
// with the tool roster filled in, followed by the user's question.
func renderMessages(ctx context.Context, question string, infos []*schema.ToolInfo) ([]*schema.Message, error) {
	promptTemp := prompt.FromMessages(schema.FString,
		schema.SystemMessage(systemTpl),
		schema.MessagesPlaceholder("user_input", true),
	)

	var roster strings.Builder
	for _, info := range infos {
		fmt.Fprintf(&roster, "- %s: %s\n", info.Name, info.Desc)
	}

	return promptTemp.Format(ctx, map[string]any{
		"tool_roster":  strings.TrimRight(roster.String(), "\n"),
		"current_date": time.Now().Format("2006-01-02"),
		"user_input":   []*schema.Message{schema.UserMessage(question)},
	})
}
