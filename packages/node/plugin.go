package node

import (
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/dig"
)

const (
	Disabled = iota
	Enabled
)

// Callback is executed when a plugin is configured or run.
type Callback = func(plugin *Plugin)

// InitEvent is triggered before any plugin is configured so plugins can register their providers.
type InitEvent struct {
	Plugin    *Plugin
	Container *dig.Container
}

// Events contains the lifecycle events of a Plugin.
type Events struct {
	Init      *event.Event[*InitEvent]
	Configure *event.Event[*Plugin]
	Run       *event.Event[*Plugin]
}

// Plugin is a component of the node.
type Plugin struct {
	Node   *Node
	Name   string
	Status int
	Events *Events

	// Logger is a logger named after the plugin. It is available from the Init event on.
	*logger.Logger

	deps interface{}
	err  error
}

// NewPlugin creates a new plugin with the given name, default status and callbacks. deps is a pointer to a struct
// embedding dig.In that is populated before the plugin is configured (may be nil).
// The last specified callback is the run callback, while all other callbacks are configure callbacks.
func NewPlugin(name string, deps interface{}, status int, callbacks ...Callback) *Plugin {
	plugin := &Plugin{
		Name:   name,
		Status: status,
		Events: &Events{
			Init:      event.New[*InitEvent](),
			Configure: event.New[*Plugin](),
			Run:       event.New[*Plugin](),
		},
		deps: deps,
	}

	switch len(callbacks) {
	case 0:
	case 1:
		plugin.Events.Run.Attach(event.NewClosure(callbacks[0]))
	default:
		for _, callback := range callbacks[:len(callbacks)-1] {
			plugin.Events.Configure.Attach(event.NewClosure(callback))
		}
		plugin.Events.Run.Attach(event.NewClosure(callbacks[len(callbacks)-1]))
	}

	return plugin
}

// Provide registers providers in the container of the node. Failures abort the start of the node.
func (p *Plugin) Provide(container *dig.Container, constructors ...interface{}) {
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			p.err = err
			return
		}
	}
}
