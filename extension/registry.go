// registry.go holds the global set of extensions.
//
// Extensions self-register from init(), before main() runs, so the CLI and
// the MCP server see the same set. Registration order is kept so commands
// and tools are listed the same way on every run.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string
)

// Register adds an extension to the registry. Called from init() functions.
// It panics on a duplicate name, as database/sql.Register does: two
// extensions claiming one name is a build mistake, not a runtime condition.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}
	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns the extension registered under name, or nil.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the registered extension names in registration order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), order...)
}

// StandaloneCommands collects the commands every Standalone extension
// declares. These run without opening the workspace.
func StandaloneCommands() []string {
	var names []string
	for _, e := range All() {
		if s, ok := e.(Standalone); ok {
			names = append(names, s.StandaloneCommands()...)
		}
	}
	return names
}

// Tools collects the MCP tools of every extension, in registration order.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, e := range All() {
		tools = append(tools, e.MCPTools()...)
	}
	return tools
}

// InitAll hands ctx to every Initializable extension, stopping at the
// first failure.
func InitAll(ctx Context) error {
	for _, e := range All() {
		if i, ok := e.(Initializable); ok {
			if err := i.Init(ctx); err != nil {
				return &InitError{Name: e.Name(), Err: err}
			}
		}
	}
	return nil
}

// InitError reports which extension failed to initialise.
type InitError struct {
	Name string
	Err  error
}

func (e *InitError) Error() string { return "init extension " + e.Name + ": " + e.Err.Error() }

func (e *InitError) Unwrap() error { return e.Err }
