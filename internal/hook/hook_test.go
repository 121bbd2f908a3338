package hook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patii/workcity/internal/asset"
)

func enqueue(handle string, order *[]string) Callback {
	return func(_ context.Context, reg *asset.Registry) {
		*order = append(*order, handle)
		_, _ = reg.Enqueue(asset.Style{Handle: handle})
	}
}

func TestActions_RunsByPriorityThenInsertion(t *testing.T) {
	a := NewActions()
	var order []string

	a.Add(EnqueueScripts, 15, "child", enqueue("child", &order))
	a.Add(EnqueueScripts, DefaultPriority, "parent", enqueue("parent", &order))
	a.Add(EnqueueScripts, DefaultPriority, "plugin", enqueue("plugin", &order))
	a.Add("wp_footer", 1, "footer", enqueue("footer", &order))

	require.Equal(t, []string{"parent", "plugin", "child"}, a.Callbacks(EnqueueScripts))

	reg := asset.NewRegistry()
	require.NoError(t, a.Do(context.Background(), EnqueueScripts, reg))
	require.Equal(t, []string{"parent", "plugin", "child"}, order)
	require.Equal(t, 3, reg.Len())
	require.False(t, reg.Registered("footer"))
}

func TestActions_AddSameNameTwice(t *testing.T) {
	a := NewActions()
	var order []string

	require.True(t, a.Add(EnqueueScripts, 10, "child", enqueue("child", &order)))
	require.False(t, a.Add(EnqueueScripts, 20, "child", enqueue("child", &order)))
	require.True(t, a.Has(EnqueueScripts, "child"))
	require.False(t, a.Has("wp_footer", "child"))

	require.NoError(t, a.Do(context.Background(), EnqueueScripts, asset.NewRegistry()))
	require.Equal(t, []string{"child"}, order)
}

func TestActions_DoUnknownEvent(t *testing.T) {
	reg := asset.NewRegistry()
	require.NoError(t, NewActions().Do(context.Background(), "nothing", reg))
	require.Zero(t, reg.Len())
}

func TestActions_DoStopsOnCancelledContext(t *testing.T) {
	a := NewActions()
	var order []string
	a.Add(EnqueueScripts, 10, "parent", enqueue("parent", &order))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Do(ctx, EnqueueScripts, asset.NewRegistry())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, order)
}
