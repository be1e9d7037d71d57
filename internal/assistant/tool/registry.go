package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/warungio/stockpilot/pkg/logger"
)

// dispatchTimeout bounds a single tool execution.
const dispatchTimeout = 10 * time.Second

var toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "assistant_tool_calls_total",
	Help: "Total tool dispatches by tool name and outcome",
}, []string{"tool", "outcome"})

// Definition is the schema form of a tool handed to the model.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Registry holds the tools exposed to the model, in registration order.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering the same name twice panics, since
// the set of tools is fixed at startup.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	if _, exists := r.tools[name]; exists {
		panic(fmt.Sprintf("tool %q registered twice", name))
	}
	r.tools[name] = t
	r.order = append(r.order, name)
}

// Definitions returns the schema definitions in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Dispatch runs one tool call and always returns text. Tool failures,
// bad arguments and unknown names are contained into error messages
// the model can relay to the user instead of failing the whole turn.
func (r *Registry) Dispatch(ctx context.Context, userID uint, name, argsJSON string) string {
	t, ok := r.tools[name]
	if !ok {
		toolCalls.WithLabelValues(name, "unknown").Inc()
		return fmt.Sprintf("Error: tool %q tidak tersedia", name)
	}

	args := map[string]interface{}{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			toolCalls.WithLabelValues(name, "bad_args").Inc()
			return fmt.Sprintf("Error: argumen tool %s tidak valid: %v", name, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	result, err := t.Call(ctx, userID, args)
	if err != nil {
		toolCalls.WithLabelValues(name, "error").Inc()
		logger.Warn(ctx).
			Err(err).
			Str("tool", name).
			Uint("user_id", userID).
			Msg("Tool call failed")
		return fmt.Sprintf("Error menjalankan %s: %v", name, err)
	}

	toolCalls.WithLabelValues(name, "ok").Inc()
	return result
}
