package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codelovable/codelovable/internal/config"
	"github.com/codelovable/codelovable/internal/events"
	"github.com/codelovable/codelovable/internal/generator"
	"github.com/codelovable/codelovable/internal/model"
	"github.com/codelovable/codelovable/internal/persist"
	"github.com/codelovable/codelovable/internal/store"
)

// app bundles the pieces every command needs: config, the hydrated store,
// and the snapshot it writes back to. Commands are one-shot; state crosses
// invocations only through the snapshot file.
type app struct {
	workspace string
	cfg       *config.Config
	snapshot  *persist.Snapshot
	store     *store.Store
	bus       *events.EventBus
}

// loadApp hydrates the store from the workspace snapshot and restores the
// selected project, if any.
func loadApp() (*app, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine workspace: %w", err)
	}

	cfg, err := config.LoadConfig(workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	bus := events.NewEventBus()
	st := store.NewStore(bus)
	snapshot := persist.NewSnapshot(workspace)

	projects, user, err := snapshot.Load()
	if err != nil {
		return nil, err
	}
	st.Hydrate(projects, user)

	a := &app{workspace: workspace, cfg: cfg, snapshot: snapshot, store: st, bus: bus}
	if id := a.readSelection(); id != "" && st.HasProject(id) {
		if _, err := st.SelectProject(id); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// save writes the durable slice of state back to the snapshot.
func (a *app) save() error {
	return a.snapshot.Save(a.store.Projects(), a.store.User())
}

// client builds the generation backend from config.
func (a *app) client() (generator.Client, error) {
	return generator.CreateClientWithConfig(a.cfg.Model, generator.ClientConfig{
		APIKey:    a.cfg.APIKey,
		BaseURL:   a.cfg.BaseURL,
		MaxTokens: a.cfg.MaxTokens,
	})
}

// selectionPath is the marker file recording the selected project between
// invocations. It is CLI glue, not session state, so it lives outside the
// snapshot.
func (a *app) selectionPath() string {
	return filepath.Join(a.workspace, ".codelovable", "current_project")
}

func (a *app) readSelection() string {
	data, err := os.ReadFile(a.selectionPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (a *app) writeSelection(id string) error {
	if id == "" {
		err := os.Remove(a.selectionPath())
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.WriteFile(a.selectionPath(), []byte(id+"\n"), 0o644)
}

// resolveProject finds a project by id or name. With no argument it falls
// back to the selected project.
func (a *app) resolveProject(arg string) (model.Project, error) {
	projects := a.store.Projects()
	if arg == "" {
		if current, ok := a.store.CurrentProject(); ok {
			return current, nil
		}
		return model.Project{}, fmt.Errorf("no project selected; pass a project name or run 'codelovable select'")
	}
	for _, p := range projects {
		if p.ID == arg || p.Name == arg {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("no project named %q", arg)
}
