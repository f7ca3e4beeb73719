// Package store owns the application session state: the project collection,
// the live chat transcript, the generated-files working set, and the UI
// selection flags. All mutations go through named operations backed by pure
// transition functions; nothing outside this package writes a field.
package store

import (
	"github.com/codelovable/codelovable/internal/model"
)

// State is the complete session state. The live transcript and working set
// are independent of any project's stored history until an operation
// explicitly syncs them. Everything except Projects and User is ephemeral
// and resets on every fresh session.
type State struct {
	Projects       []model.Project
	CurrentProject *model.Project
	User           *model.UserProfile

	ChatMessages   []model.ChatMessage
	GeneratedFiles []model.GeneratedFile

	IsGenerating bool
	SelectedFile string // empty means no selection
	SidebarOpen  bool
}

// NewState returns the initial session state.
func NewState() State {
	return State{
		Projects:       []model.Project{},
		ChatMessages:   []model.ChatMessage{},
		GeneratedFiles: []model.GeneratedFile{},
		SidebarOpen:    true,
	}
}

// Clone returns a deep copy. Holders of a clone can never observe or cause
// later mutations of the live state.
func (s State) Clone() State {
	out := s
	out.Projects = model.CloneProjects(s.Projects)
	out.ChatMessages = model.CloneMessages(s.ChatMessages)
	out.GeneratedFiles = model.CloneFiles(s.GeneratedFiles)
	if s.CurrentProject != nil {
		current := s.CurrentProject.Clone()
		out.CurrentProject = &current
	}
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	return out
}

// ProjectDraft is the caller-supplied part of a new project.
type ProjectDraft struct {
	Name        string
	Description string
	Framework   string
	Features    []string
}

// ProjectUpdate is a partial project: nil fields stay untouched, non-nil
// fields replace. Slices replace wholesale when non-nil.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Files       []model.GeneratedFile
	ChatHistory []model.ChatMessage
	Status      *model.ProjectStatus
	Framework   *string
	Features    []string
	Manifest    *model.PackageManifest
}
