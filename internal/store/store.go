package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codelovable/codelovable/internal/events"
	"github.com/codelovable/codelovable/internal/model"
)

// Store is the single authoritative holder of session state. Every mutation
// is a named operation applied under one mutex; the IsGenerating flag is the
// sole admission gate for generation requests.
type Store struct {
	mu    sync.RWMutex
	state State
	bus   *events.EventBus
}

// NewStore creates a store with fresh session state. bus may be nil.
func NewStore(bus *events.EventBus) *Store {
	return &Store{
		state: NewState(),
		bus:   bus,
	}
}

func (s *Store) emit(eventType events.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(eventType, data)
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// CreateProject allocates id and timestamps, appends the project and makes
// it current. Fails with a validation error if the draft name is empty.
func (s *Store) CreateProject(draft ProjectDraft) (model.Project, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return model.Project{}, NewError(KindValidation, "project name must not be empty")
	}

	now := time.Now()
	project := model.Project{
		ID:          uuid.New().String(),
		Name:        draft.Name,
		Description: draft.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Files:       []model.GeneratedFile{},
		ChatHistory: []model.ChatMessage{},
		Status:      model.StatusDraft,
		Framework:   draft.Framework,
		Features:    draft.Features,
	}

	s.mu.Lock()
	s.state = reduceCreateProject(s.state, project)
	s.mu.Unlock()

	s.emit(events.ProjectCreated, project.ID)
	return project.Clone(), nil
}

// SelectProject makes the matching project current and replaces the live
// working set and transcript with the project's stored ones.
func (s *Store) SelectProject(id string) (model.Project, error) {
	s.mu.Lock()
	project := findProject(s.state.Projects, id)
	if project == nil {
		s.mu.Unlock()
		return model.Project{}, NewError(KindNotFound, "no project with id %s", id)
	}
	selected := project.Clone()
	s.state = reduceSelectProject(s.state, selected)
	s.mu.Unlock()

	s.emit(events.ProjectSelected, id)
	return selected, nil
}

// UpdateProject merges the partial update into the project with that id and
// bumps UpdatedAt. The stored project is replaced, never edited in place; if
// it is the current project the current view is replaced with the merged
// result so the collection and the current pointer cannot diverge.
func (s *Store) UpdateProject(id string, update ProjectUpdate) (model.Project, error) {
	s.mu.Lock()
	existing := findProject(s.state.Projects, id)
	if existing == nil {
		s.mu.Unlock()
		return model.Project{}, NewError(KindNotFound, "no project with id %s", id)
	}
	merged := mergeProject(*existing, update, time.Now())
	s.state = reduceUpdateProject(s.state, merged)
	s.mu.Unlock()

	s.emit(events.ProjectUpdated, id)
	return merged.Clone(), nil
}

// DeleteProject removes the project; if it was current, current becomes nil.
// The live working set and transcript are intentionally left alone — the
// caller decides whether to clear them.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	if findProject(s.state.Projects, id) == nil {
		s.mu.Unlock()
		return NewError(KindNotFound, "no project with id %s", id)
	}
	s.state = reduceDeleteProject(s.state, id)
	s.mu.Unlock()

	s.emit(events.ProjectDeleted, id)
	return nil
}

// HasProject reports whether a project with the id exists.
func (s *Store) HasProject(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findProject(s.state.Projects, id) != nil
}

// CurrentProject returns a copy of the current project, or false.
func (s *Store) CurrentProject() (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentProject == nil {
		return model.Project{}, false
	}
	return s.state.CurrentProject.Clone(), true
}

// AppendChatMessage assigns id and timestamp and appends to the live
// transcript only; the stored project history is untouched until a project
// update syncs it.
func (s *Store) AppendChatMessage(role, content string, metadata *model.MessageMetadata) model.ChatMessage {
	msg := model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}

	s.mu.Lock()
	s.state = reduceAppendChatMessage(s.state, msg)
	s.mu.Unlock()

	s.emit(events.ChatMessageAppended, msg.ID)
	return msg
}

// ClearChatHistory empties the live transcript.
func (s *Store) ClearChatHistory() {
	s.mu.Lock()
	s.state = reduceClearChatHistory(s.state)
	s.mu.Unlock()

	s.emit(events.ChatCleared, nil)
}

// ChatMessages returns a copy of the live transcript.
func (s *Store) ChatMessages() []model.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneMessages(s.state.ChatMessages)
}

// SetGeneratedFiles replaces the live working set wholesale.
func (s *Store) SetGeneratedFiles(files []model.GeneratedFile) {
	s.mu.Lock()
	s.state = reduceSetGeneratedFiles(s.state, files)
	s.mu.Unlock()

	s.emit(events.FilesReplaced, len(files))
}

// UpsertGeneratedFile replaces the entry with the same path or appends,
// preserving the relative order of untouched entries.
func (s *Store) UpsertGeneratedFile(file model.GeneratedFile) {
	s.mu.Lock()
	s.state = reduceUpsertGeneratedFile(s.state, file)
	s.mu.Unlock()

	s.emit(events.FileUpserted, file.Path)
}

// GeneratedFiles returns a copy of the live working set.
func (s *Store) GeneratedFiles() []model.GeneratedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneFiles(s.state.GeneratedFiles)
}

// SetUser replaces the persisted user profile.
func (s *Store) SetUser(user *model.UserProfile) {
	s.mu.Lock()
	s.state = reduceSetUser(s.state, user)
	s.mu.Unlock()
}

// SetSelectedFile records the viewer selection. The path must name a file
// in the working set; an empty path clears the selection.
func (s *Store) SetSelectedFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if path != "" && !containsPath(s.state.GeneratedFiles, path) {
		return NewError(KindNotFound, "no generated file with path %s", path)
	}
	next := s.state
	next.SelectedFile = path
	s.state = next
	return nil
}

// SetSidebarOpen records the sidebar flag.
func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	next := s.state
	next.SidebarOpen = open
	s.state = next
	s.mu.Unlock()
}

// IsGenerating reports whether a generation is in flight.
func (s *Store) IsGenerating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsGenerating
}

// BeginGeneration is the single-flight admission gate. It appends the user
// message and raises the in-flight flag as one observable step; a second
// call while in flight is rejected with a busy error and changes nothing.
func (s *Store) BeginGeneration(prompt string) (model.ChatMessage, error) {
	msg := model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      model.RoleUser,
		Content:   prompt,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	if s.state.IsGenerating {
		s.mu.Unlock()
		return model.ChatMessage{}, NewError(KindBusy, "a generation is already in flight")
	}
	next := reduceAppendChatMessage(s.state, msg)
	next.IsGenerating = true
	s.state = next
	s.mu.Unlock()

	s.emit(events.ChatMessageAppended, msg.ID)
	s.emit(events.GenerationStarted, nil)
	return msg, nil
}

// EndGeneration lowers the in-flight flag.
func (s *Store) EndGeneration() {
	s.mu.Lock()
	next := s.state
	next.IsGenerating = false
	s.state = next
	s.mu.Unlock()
}

// Hydrate replaces the persisted slice of state — projects and user — from
// a snapshot. Live session state stays untouched except that a current
// project whose id no longer exists is cleared.
func (s *Store) Hydrate(projects []model.Project, user *model.UserProfile) {
	s.mu.Lock()
	s.state = reduceHydrate(s.state, projects, user)
	s.mu.Unlock()

	s.emit(events.SnapshotReloaded, len(projects))
}

// Projects returns a copy of the project collection.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneProjects(s.state.Projects)
}

// User returns a copy of the user profile, or nil.
func (s *Store) User() *model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	user := *s.state.User
	return &user
}
