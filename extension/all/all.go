// Package all imports all core llmedit extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/llmedit/extension/core"
	_ "github.com/jpl-au/llmedit/extension/diff"
	_ "github.com/jpl-au/llmedit/extension/edit"
	_ "github.com/jpl-au/llmedit/extension/file"
)
