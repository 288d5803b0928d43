/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the complex initialisation logic that
// discovers the workspace, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before a workspace exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/llmedit/extension"
	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/session"
)

// standaloneCommands lists commands that bypass automatic workspace
// initialisation. Built dynamically from bootstrap commands plus
// extension-declared standalone commands.
var standaloneCommands map[string]bool

// authorRequiredCommands lists commands that require author configuration.
// These are commands that modify files on disk.
var authorRequiredCommands = map[string]bool{
	"write": true,
	"edit":  true,
}

// buildStandaloneCommands creates the set of commands that skip workspace
// initialisation.
//
// There are two categories:
//
//  1. Bootstrap commands (init, guide, config) - These help users set up
//     or learn about llmedit before a workspace exists. Running
//     "llmedit guide" shouldn't fail just because you haven't run
//     "llmedit init" yet.
//
//  2. Extension-declared standalone commands - Extensions can implement the
//     Standalone interface to declare commands that manage their own service
//     lifecycle or never touch the state cache, such as diff and serve.
//
// When adding a new command: If it's a core bootstrap command, add it here.
// Otherwise, implement extension.Standalone in your extension.
func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
	}

	for _, name := range extension.StandaloneCommands() {
		cmds[name] = true
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *session.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the workspace and injects the service into extensions.
//
// Why sync.Once: the service owns the state database connection and must be
// shared across all extensions. sync.Once guarantees exactly one
// initialisation per process.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := session.OpenDir(Dir())
		if err != nil {
			initErr = fmt.Errorf("opening workspace: %w", err)
			return
		}
		extService = svc

		// Set project identifier for audit logging
		log.SetProject(svc.Dir())

		extContext = extension.NewContext(svc, svc.Config())

		initErr = extension.InitAll(extContext)
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build standaloneCommands after all extensions are registered
		standaloneCommands = buildStandaloneCommands()
	})
}
