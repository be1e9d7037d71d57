package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warungio/stockpilot/internal/assistant/llm"
	"github.com/warungio/stockpilot/internal/assistant/memory"
	"github.com/warungio/stockpilot/internal/assistant/tool"
)

// fakeCompleter replays scripted completions in order.
type fakeCompleter struct {
	completions []*llm.Completion
	err         error
	calls       int
	lastMsgs    []llm.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message, tools []tool.Definition) (*llm.Completion, error) {
	f.lastMsgs = messages
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.completions) {
		return &llm.Completion{Text: "habis"}, nil
	}
	c := f.completions[f.calls]
	f.calls++
	return c, nil
}

type stubTool struct {
	name   string
	result string
	called bool
	userID uint
}

func (s *stubTool) Name() string                       { return s.name }
func (s *stubTool) Description() string                { return "stub" }
func (s *stubTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }
func (s *stubTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	s.called = true
	s.userID = userID
	return s.result, nil
}

func newTestAgent(completer llm.Completer, tools ...tool.Tool) (*Agent, *memory.Store) {
	registry := tool.NewRegistry()
	for _, t := range tools {
		registry.Register(t)
	}
	store := memory.NewStore()
	return NewAgent(completer, registry, store), store
}

func TestChatRefusesOffTopicPrompt(t *testing.T) {
	completer := &fakeCompleter{}
	agent, store := newTestAgent(completer)

	reply := agent.Chat(context.Background(), 1, "Bagaimana cuaca di Jakarta?")

	assert.Equal(t, RefusalMessage, reply)
	assert.Zero(t, completer.calls, "model must not be called for off topic prompts")
	assert.Empty(t, store.History(1), "refused turns are not remembered")
}

func TestChatDirectAnswer(t *testing.T) {
	completer := &fakeCompleter{completions: []*llm.Completion{
		{Text: "Stok gula tersisa 12 unit."},
	}}
	agent, store := newTestAgent(completer)

	reply := agent.Chat(context.Background(), 1, "berapa stok gula?")

	assert.Equal(t, "Stok gula tersisa 12 unit.", reply)
	history := store.History(1)
	require.Len(t, history, 2)
	assert.Equal(t, "berapa stok gula?", history[0].Content)
	assert.Equal(t, reply, history[1].Content)
}

func TestChatToolCallRound(t *testing.T) {
	st := &stubTool{name: "list_goods", result: "Ditemukan 1 barang: gula, stok 12."}
	completer := &fakeCompleter{completions: []*llm.Completion{
		{ToolCalls: []llm.ToolCall{{ID: "call_1", Name: "list_goods", Arguments: `{"search":"gula"}`}}},
		{Text: "Kamu punya 12 unit gula."},
	}}
	agent, _ := newTestAgent(completer, st)

	reply := agent.Chat(context.Background(), 7, "berapa stok gula?")

	assert.Equal(t, "Kamu punya 12 unit gula.", reply)
	assert.True(t, st.called)
	assert.Equal(t, uint(7), st.userID, "user identity comes from the request, not the model")

	// The second model call must carry the tool result back.
	var sawToolResult bool
	for _, m := range completer.lastMsgs {
		if m.Role == llm.RoleTool && m.ToolCallID == "call_1" {
			sawToolResult = true
			assert.Equal(t, st.result, m.Content)
		}
	}
	assert.True(t, sawToolResult)
}

func TestChatModelFailureReturnsApologyWithoutMemoryWrite(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream 500")}
	agent, store := newTestAgent(completer)

	reply := agent.Chat(context.Background(), 1, "berapa stok gula?")

	assert.Contains(t, reply, "Maaf")
	assert.NotEqual(t, RefusalMessage, reply)
	assert.Empty(t, store.History(1), "failed turns must not pollute memory")
}

func TestChatIncludesHistoryInModelCall(t *testing.T) {
	completer := &fakeCompleter{completions: []*llm.Completion{
		{Text: "Baik, sudah saya catat."},
	}}
	agent, store := newTestAgent(completer)
	store.Append(1, "berapa stok gula?", "Stok gula 12 unit.")

	agent.Chat(context.Background(), 1, "catat penjualan 2 gula")

	require.GreaterOrEqual(t, len(completer.lastMsgs), 4)
	assert.Equal(t, llm.RoleSystem, completer.lastMsgs[0].Role)
	assert.Equal(t, "berapa stok gula?", completer.lastMsgs[1].Content)
	assert.Equal(t, "Stok gula 12 unit.", completer.lastMsgs[2].Content)
	assert.Equal(t, "catat penjualan 2 gula", completer.lastMsgs[3].Content)
}

func TestChatStopsAfterMaxToolRounds(t *testing.T) {
	// The model keeps asking for tools; the agent must cut it off and
	// force a final text answer.
	st := &stubTool{name: "list_goods", result: "ok"}
	var completions []*llm.Completion
	for i := 0; i < maxToolRounds; i++ {
		completions = append(completions, &llm.Completion{
			ToolCalls: []llm.ToolCall{{ID: "c", Name: "list_goods", Arguments: "{}"}},
		})
	}
	completions = append(completions, &llm.Completion{Text: "Ringkasan akhir."})
	completer := &fakeCompleter{completions: completions}
	agent, _ := newTestAgent(completer, st)

	reply := agent.Chat(context.Background(), 1, "daftar barang")

	assert.Equal(t, "Ringkasan akhir.", reply)
	assert.Equal(t, maxToolRounds+1, completer.calls)
}
