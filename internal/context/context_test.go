package context

import (
	stdctx "context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	name string
	out  map[string]any
	err  error
}

func (f fakeProvider) Name() string { return f.name }
func (f fakeProvider) GetContext(ctx stdctx.Context, args map[string]any) (map[string]any, error) {
	return f.out, f.err
}

func TestPollMergesAllProviders(t *testing.T) {
	b := NewBroadcaster(nil,
		fakeProvider{name: "a", out: map[string]any{"x": 1}},
		fakeProvider{name: "b", out: map[string]any{"y": 2}},
	)
	merged := b.Poll(stdctx.Background(), nil)
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, merged)
}

func TestPollFirstRegisteredWinsOnCollision(t *testing.T) {
	b := NewBroadcaster(nil,
		fakeProvider{name: "a", out: map[string]any{"x": "first"}},
		fakeProvider{name: "b", out: map[string]any{"x": "second"}},
	)
	merged := b.Poll(stdctx.Background(), nil)
	assert.Equal(t, "first", merged["x"])
}

func TestPollSwallowsProviderErrors(t *testing.T) {
	b := NewBroadcaster(nil,
		fakeProvider{name: "a", err: errors.New("unreachable")},
		fakeProvider{name: "b", out: map[string]any{"y": 2}},
	)
	merged := b.Poll(stdctx.Background(), nil)
	assert.Equal(t, map[string]any{"y": 2}, merged)
}

func TestPollEmptyWithNoProviders(t *testing.T) {
	b := NewBroadcaster(nil)
	merged := b.Poll(stdctx.Background(), nil)
	assert.Empty(t, merged)
}
