package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTool struct {
	name   string
	result string
	err    error
	args   map[string]interface{}
	userID uint
}

func (f *fakeTool) Name() string                        { return f.name }
func (f *fakeTool) Description() string                 { return "fake tool" }
func (f *fakeTool) Parameters() map[string]interface{}  { return map[string]interface{}{"type": "object"} }
func (f *fakeTool) Call(ctx context.Context, userID uint, args map[string]interface{}) (string, error) {
	f.userID = userID
	f.args = args
	return f.result, f.err
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	ft := &fakeTool{name: "list_goods", result: "Ditemukan 2 barang."}
	r.Register(ft)

	out := r.Dispatch(context.Background(), 42, "list_goods", `{"search":"gula"}`)

	assert.Equal(t, "Ditemukan 2 barang.", out)
	assert.Equal(t, uint(42), ft.userID)
	assert.Equal(t, "gula", ft.args["search"])
}

func TestRegistryDispatchUnknownTool(t *testing.T) {
	r := NewRegistry()

	out := r.Dispatch(context.Background(), 1, "drop_tables", "{}")

	assert.Contains(t, out, "tidak tersedia")
}

func TestRegistryDispatchBadArguments(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeTool{name: "list_goods"})

	out := r.Dispatch(context.Background(), 1, "list_goods", "{not json")

	assert.Contains(t, out, "tidak valid")
}

func TestRegistryDispatchContainsToolError(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeTool{name: "record_sale", err: errors.New("insufficient stock: 2 available, 5 requested")})

	out := r.Dispatch(context.Background(), 1, "record_sale", `{"goods_id":1,"quantity":5}`)

	assert.Contains(t, out, "Error menjalankan record_sale")
	assert.Contains(t, out, "insufficient stock")
}

func TestRegistryDispatchEmptyArguments(t *testing.T) {
	r := NewRegistry()
	ft := &fakeTool{name: "list_goods", result: "ok"}
	r.Register(ft)

	out := r.Dispatch(context.Background(), 1, "list_goods", "")

	assert.Equal(t, "ok", out)
	assert.NotNil(t, ft.args)
}

func TestRegistryDefinitionsKeepOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeTool{name: "list_goods"})
	r.Register(&fakeTool{name: "record_sale"})
	r.Register(&fakeTool{name: "get_forecast"})

	defs := r.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "list_goods", defs[0].Name)
	assert.Equal(t, "record_sale", defs[1].Name)
	assert.Equal(t, "get_forecast", defs[2].Name)
}

func TestRegistryRegisterDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeTool{name: "list_goods"})

	assert.Panics(t, func() {
		r.Register(&fakeTool{name: "list_goods"})
	})
}
