package node

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/dig"
)

// Node runs a set of plugins that share a dependency injection container.
type Node struct {
	container *dig.Container
	plugins   []*Plugin
	disabled  map[string]bool
	stopped   chan struct{}

	*logger.Logger
}

// New creates a Node. Plugins named in enabledPlugins run even if they are disabled by default, plugins named in
// disabledPlugins are skipped. Names are matched case-insensitive and ignoring spaces.
func New(container *dig.Container, log *logger.Logger, enabledPlugins, disabledPlugins []string, plugins ...*Plugin) *Node {
	node := &Node{
		container: container,
		plugins:   plugins,
		disabled:  make(map[string]bool, len(enabledPlugins)+len(disabledPlugins)),
		stopped:   make(chan struct{}),
		Logger:    log,
	}
	for _, name := range enabledPlugins {
		node.disabled[pluginIdentifier(name)] = false
	}
	for _, name := range disabledPlugins {
		node.disabled[pluginIdentifier(name)] = true
	}

	return node
}

// IsSkipped returns whether the plugin is excluded from the node.
func (n *Node) IsSkipped(plugin *Plugin) bool {
	if disabled, exists := n.disabled[pluginIdentifier(plugin.Name)]; exists {
		return disabled
	}

	return plugin.Status == Disabled
}

// Plugins returns all plugins of the node, including the skipped ones.
func (n *Node) Plugins() []*Plugin {
	return n.plugins
}

// Start initializes, configures and runs every enabled plugin and starts the background workers.
func (n *Node) Start() error {
	enabled := make([]*Plugin, 0, len(n.plugins))
	for _, plugin := range n.plugins {
		if n.IsSkipped(plugin) {
			n.Infof("Skipping plugin %s", plugin.Name)
			continue
		}
		plugin.Node = n
		plugin.Logger = n.Named(plugin.Name)
		enabled = append(enabled, plugin)
	}

	for _, plugin := range enabled {
		plugin.Events.Init.Trigger(&InitEvent{Plugin: plugin, Container: n.container})
		if plugin.err != nil {
			return errors.Errorf("failed to initialize plugin %s: %w", plugin.Name, plugin.err)
		}
	}

	for _, plugin := range enabled {
		if plugin.deps != nil {
			if err := fillDependencies(n.container, plugin.deps); err != nil {
				return errors.Errorf("failed to resolve dependencies of plugin %s: %w", plugin.Name, err)
			}
		}
		plugin.Events.Configure.Trigger(plugin)
		n.Infof("Configured plugin %s", plugin.Name)
	}

	for _, plugin := range enabled {
		plugin.Events.Run.Trigger(plugin)
		n.Infof("Started plugin %s", plugin.Name)
	}

	daemon.Run()

	return nil
}

// Run starts the node and blocks until Shutdown was called.
func (n *Node) Run() error {
	if err := n.Start(); err != nil {
		return err
	}
	<-n.stopped

	return nil
}

// Shutdown stops all background workers and unblocks Run.
func (n *Node) Shutdown() {
	daemon.ShutdownAndWait()
	close(n.stopped)
}

// fillDependencies populates deps, a pointer to a struct embedding dig.In, from the container.
func fillDependencies(container *dig.Container, deps interface{}) error {
	depsValue := reflect.ValueOf(deps)
	if depsValue.Kind() != reflect.Ptr || depsValue.Elem().Kind() != reflect.Struct {
		return errors.Errorf("dependencies must be a pointer to a struct, got %T", deps)
	}

	populate := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{depsValue.Elem().Type()}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			depsValue.Elem().Set(args[0])
			return nil
		},
	)

	return container.Invoke(populate.Interface())
}

func pluginIdentifier(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
