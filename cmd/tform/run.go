package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tform/internal/appstate"
	"tform/internal/binding"
	"tform/internal/event"
	"tform/internal/flow"
	"tform/internal/flowdef"
	"tform/internal/runtime"
	"tform/internal/widget"
	"tform/pkg/lib"
)

// loadedFlow pairs a Flow with the BindingGraph its definition declared.
type loadedFlow struct {
	flow  *flow.Flow
	graph *binding.Graph
}

// newRunCommand launches the interactive program, mirroring the
// tea.Program launch pattern used by cmd/kk and cmd/tcpo.
func newRunCommand() *cobra.Command {
	var flagFiles []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a flow in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(flagFiles)
		},
	}
	cmd.Flags().StringArrayVarP(&flagFiles, "file", "f", nil, "flow definition file (YAML); repeatable. Runs after any files under the config directory's flows/ folder; the built-in demo flow runs when no file is found")
	return cmd
}

// runForm resolves the flows to run (the config directory's flows/ folder,
// then explicit --file flags, falling back to the built-in demo flow if
// neither yields anything) and drives them one at a time through the
// bubbletea runtime.
func runForm(flagFiles []string) error {
	flows, err := loadFlows(flagFiles)
	if err != nil {
		lib.Exit(err)
	}

	for _, lf := range flows {
		if err := runOne(lf); err != nil {
			return err
		}
	}
	return nil
}

func loadFlows(flagFiles []string) ([]loadedFlow, error) {
	configDir, err := flowdef.ResolveConfigDir()
	if err != nil {
		return nil, err
	}
	files, err := flowdef.ResolveFlowFiles(configDir, flagFiles)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		registry := binding.NewRegistry()
		return []loadedFlow{{flow: demoFlow(), graph: demoGraph(registry)}}, nil
	}

	registry := binding.NewRegistry()
	flows := make([]loadedFlow, 0, len(files))
	for _, path := range files {
		doc, err := flowdef.LoadFile(path)
		if err != nil {
			return nil, err
		}
		f, g, err := flowdef.Build(doc, registry)
		if err != nil {
			return nil, fmt.Errorf("building flow from %s: %w", path, err)
		}
		flows = append(flows, loadedFlow{flow: f, graph: g})
	}
	return flows, nil
}

func runOne(lf loadedFlow) error {
	state := appstate.New(lf.flow, lf.graph)

	model := runtime.New(state, widget.DefaultTheme, func(ev event.WidgetEvent) {
		// The engine core treats widget events as opaque notifications
		// (spec §4.5); a real integration would forward these to its own
		// application logic instead of discarding them.
		_ = ev
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
