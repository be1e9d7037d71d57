package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/warungio/stockpilot/internal/assistant/tool"
)

// Options configure the OpenAI completer. Fields mirror a minimal
// subset of Chat Completion parameters.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// OpenAICompleter implements Completer on the OpenAI Chat Completions
// API with function calling.
type OpenAICompleter struct {
	client *openai.Client
	opts   Options
}

// NewOpenAICompleter creates a completer using the official client.
// The API key is read from OPENAI_API_KEY.
func NewOpenAICompleter(optFns ...func(o *Options)) *OpenAICompleter {
	client := openai.NewClient()
	return NewOpenAICompleterFromClient(&client, optFns...)
}

// NewOpenAICompleterFromClient creates a completer from an existing client.
func NewOpenAICompleterFromClient(client *openai.Client, optFns ...func(o *Options)) *OpenAICompleter {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.2,
		MaxCompletionTokens: 2048,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &OpenAICompleter{client: client, opts: opts}
}

// Complete runs one non-streaming chat completion.
func (c *OpenAICompleter) Complete(ctx context.Context, messages []Message, tools []tool.Definition) (*Completion, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(messages),
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}
	if len(tools) > 0 {
		params.Tools = buildTools(tools)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	choice := resp.Choices[0]
	out := &Completion{Text: choice.Message.Content}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

// buildMessages converts conversation entries into the SDK's message
// union, reattaching tool calls to assistant messages.
func buildMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			toolCalls := make([]openai.ChatCompletionMessageToolCallParam, 0, len(m.ToolCalls))
			for _, tc := range m.ToolCalls {
				toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallParam{
					ID:   tc.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: toolCalls,
				},
			})
		case RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		default:
			if m.Content != "" {
				out = append(out, openai.UserMessage(m.Content))
			}
		}
	}
	return out
}

// buildTools converts registry definitions into SDK tool params.
func buildTools(tools []tool.Definition) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, len(tools))
	for i, def := range tools {
		out[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        def.Name,
				Description: openai.String(def.Description),
				Parameters:  def.Parameters,
			},
		}
	}
	return out
}
