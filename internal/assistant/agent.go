// Package assistant runs the conversational layer: an LLM with
// function calling drives the goods, sales and forecast operations on
// behalf of the authenticated user.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/warungio/stockpilot/internal/assistant/gate"
	"github.com/warungio/stockpilot/internal/assistant/llm"
	"github.com/warungio/stockpilot/internal/assistant/memory"
	"github.com/warungio/stockpilot/internal/assistant/tool"
	"github.com/warungio/stockpilot/pkg/logger"
)

const systemPrompt = `Kamu adalah asisten manajemen barang dan penjualan untuk UMKM.

TANGGUNG JAWAB:
- Membantu user mengelola barang/inventory (melihat, menambah, mengubah, menghapus)
- Membantu user mencatat penjualan dengan otomatis mengurangi stok barang
- Memberikan laporan forecast/prediksi restock barang yang hampir habis

BATASAN:
- HANYA membahas topik inventory, penjualan, dan forecast barang
- TOLAK pertanyaan di luar konteks bisnis inventory/penjualan
- Jika user bertanya hal yang tidak relevan, ingatkan dengan sopan untuk fokus pada manajemen barang/penjualan

PENGGUNAAN TOOLS:
- Selalu gunakan tools yang tersedia untuk operasi data, jangan membuat data fiktif
- Jawab dalam bahasa Indonesia yang mudah dipahami
- Format angka dengan pemisah ribuan (Rp X.XXX)`

// RefusalMessage is returned for off topic prompts, before any model call.
const RefusalMessage = "Maaf, saya hanya bisa membantu dengan manajemen barang dan penjualan. " +
	"Silakan tanyakan tentang inventory, sales, atau forecast barang Anda. 😊"

// apologyMessage is returned when the model itself fails.
const apologyMessage = "Maaf, asisten sedang mengalami gangguan. Silakan coba lagi beberapa saat."

const (
	// maxToolRounds bounds how many tool round trips one turn may take.
	maxToolRounds = 5
	modelTimeout  = 30 * time.Second
)

var chatTurns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "assistant_chat_turns_total",
	Help: "Total chat turns by outcome",
}, []string{"outcome"})

// Agent orchestrates one chat turn: gate, history, the tool calling
// loop, and memory writeback.
type Agent struct {
	completer llm.Completer
	registry  *tool.Registry
	memory    *memory.Store
}

// NewAgent creates the assistant agent.
func NewAgent(completer llm.Completer, registry *tool.Registry, store *memory.Store) *Agent {
	return &Agent{completer: completer, registry: registry, memory: store}
}

// Chat answers one prompt for the user. It always returns displayable
// text; model failures become an apology and never reach the caller as
// an error.
func (a *Agent) Chat(ctx context.Context, userID uint, prompt string) string {
	prompt = strings.TrimSpace(prompt)

	if !gate.Allow(prompt) {
		chatTurns.WithLabelValues("refused").Inc()
		return RefusalMessage
	}

	// One turn per user at a time, so history stays paired.
	unlock := a.memory.Acquire(userID)
	defer unlock()

	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}
	for _, entry := range a.memory.History(userID) {
		messages = append(messages, llm.Message{Role: entry.Role, Content: entry.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	tools := a.registry.Definitions()

	for round := 0; round < maxToolRounds; round++ {
		completion, err := a.complete(ctx, messages, tools)
		if err != nil {
			chatTurns.WithLabelValues("model_error").Inc()
			logger.Error(ctx).Err(err).Uint("user_id", userID).Msg("Model call failed")
			return apologyMessage
		}

		if len(completion.ToolCalls) == 0 {
			reply := strings.TrimSpace(completion.Text)
			if reply == "" {
				reply = apologyMessage
				chatTurns.WithLabelValues("empty").Inc()
			} else {
				chatTurns.WithLabelValues("ok").Inc()
			}
			a.memory.Append(userID, prompt, reply)
			return reply
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   completion.Text,
			ToolCalls: completion.ToolCalls,
		})
		for _, tc := range completion.ToolCalls {
			result := a.registry.Dispatch(ctx, userID, tc.Name, tc.Arguments)
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	// Tool rounds exhausted: ask for a final answer without tools.
	completion, err := a.complete(ctx, messages, nil)
	if err != nil || strings.TrimSpace(completion.Text) == "" {
		chatTurns.WithLabelValues("model_error").Inc()
		if err != nil {
			logger.Error(ctx).Err(err).Uint("user_id", userID).Msg("Final model call failed")
		}
		return apologyMessage
	}

	reply := strings.TrimSpace(completion.Text)
	chatTurns.WithLabelValues("ok").Inc()
	a.memory.Append(userID, prompt, reply)
	return reply
}

func (a *Agent) complete(ctx context.Context, messages []llm.Message, tools []tool.Definition) (*llm.Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, modelTimeout)
	defer cancel()
	return a.completer.Complete(ctx, messages, tools)
}
