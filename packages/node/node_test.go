package node

import (
	"testing"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

type testDependencies struct {
	dig.In

	Greeting string
	Counter  *int `optional:"true"`
}

func TestFillDependencies(t *testing.T) {
	container := dig.New()
	require.NoError(t, container.Provide(func() string { return "hello" }))

	deps := new(testDependencies)
	require.NoError(t, fillDependencies(container, deps))
	assert.Equal(t, "hello", deps.Greeting)
	assert.Nil(t, deps.Counter)

	assert.Error(t, fillDependencies(container, testDependencies{}))
}

func TestNewPlugin_Callbacks(t *testing.T) {
	var calls []string
	plugin := NewPlugin("Test", nil, Enabled,
		func(*Plugin) { calls = append(calls, "configure") },
		func(*Plugin) { calls = append(calls, "run") },
	)

	plugin.Events.Configure.Trigger(plugin)
	plugin.Events.Run.Trigger(plugin)
	assert.Equal(t, []string{"configure", "run"}, calls)

	runOnly := NewPlugin("RunOnly", nil, Enabled, func(*Plugin) { calls = append(calls, "run only") })
	runOnly.Events.Configure.Trigger(runOnly)
	runOnly.Events.Run.Trigger(runOnly)
	assert.Equal(t, []string{"configure", "run", "run only"}, calls)
}

func TestNode_IsSkipped(t *testing.T) {
	enabled := NewPlugin("Web API", nil, Enabled)
	disabled := NewPlugin("Prometheus", nil, Disabled)
	other := NewPlugin("Faucet", nil, Enabled)

	n := New(dig.New(), zap.NewNop().Sugar(), nil, []string{"webapi"}, enabled, disabled, other)
	assert.True(t, n.IsSkipped(enabled))
	assert.True(t, n.IsSkipped(disabled))
	assert.False(t, n.IsSkipped(other))

	n = New(dig.New(), zap.NewNop().Sugar(), []string{"prometheus"}, nil, enabled, disabled, other)
	assert.False(t, n.IsSkipped(enabled))
	assert.False(t, n.IsSkipped(disabled))
}

func TestPlugin_Provide(t *testing.T) {
	container := dig.New()
	plugin := NewPlugin("Provider", nil, Enabled)

	plugin.Provide(container, func() string { return "value" })
	require.NoError(t, plugin.err)

	plugin.Provide(container, "not a constructor")
	assert.Error(t, plugin.err)
}

func TestNode_Start(t *testing.T) {
	provider := NewPlugin("Provider", nil, Enabled)
	provider.Events.Init.Attach(event.NewClosure(func(ev *InitEvent) {
		ev.Plugin.Provide(ev.Container, func() string { return "hello" })
	}))

	var greeting string
	deps := new(testDependencies)
	consumer := NewPlugin("Consumer", deps, Enabled,
		func(*Plugin) { greeting = deps.Greeting },
		func(plugin *Plugin) { assert.NotNil(t, plugin.Node) },
	)

	n := New(dig.New(), zap.NewNop().Sugar(), nil, nil, provider, consumer)
	require.NoError(t, n.Start())
	assert.Equal(t, "hello", greeting)

	n.Shutdown()
	<-n.stopped
}

func TestNode_Start_MissingDependency(t *testing.T) {
	consumer := NewPlugin("Consumer", new(testDependencies), Enabled)

	assert.Error(t, New(dig.New(), zap.NewNop().Sugar(), nil, nil, consumer).Start())
}
