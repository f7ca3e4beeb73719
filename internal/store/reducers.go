package store

import (
	"time"

	"github.com/codelovable/codelovable/internal/model"
)

// The transition functions below are pure: they take the previous state and
// return the next one without touching either in place. Projects are
// replaced structurally, never mutated, so references handed out earlier
// keep the fields they had.

func reduceCreateProject(st State, project model.Project) State {
	next := st
	projects := make([]model.Project, len(st.Projects)+1)
	copy(projects, st.Projects)
	projects[len(st.Projects)] = project
	next.Projects = projects

	current := project.Clone()
	next.CurrentProject = &current
	return next
}

func reduceSelectProject(st State, project model.Project) State {
	next := st
	current := project.Clone()
	next.CurrentProject = &current
	next.GeneratedFiles = model.CloneFiles(project.Files)
	next.ChatMessages = model.CloneMessages(project.ChatHistory)
	next.SelectedFile = ""
	return next
}

func reduceUpdateProject(st State, merged model.Project) State {
	next := st
	projects := make([]model.Project, len(st.Projects))
	for i, p := range st.Projects {
		if p.ID == merged.ID {
			projects[i] = merged
		} else {
			projects[i] = p
		}
	}
	next.Projects = projects

	if st.CurrentProject != nil && st.CurrentProject.ID == merged.ID {
		current := merged.Clone()
		next.CurrentProject = &current
	}
	return next
}

func reduceDeleteProject(st State, id string) State {
	next := st
	projects := make([]model.Project, 0, len(st.Projects))
	for _, p := range st.Projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	next.Projects = projects

	if st.CurrentProject != nil && st.CurrentProject.ID == id {
		next.CurrentProject = nil
	}
	return next
}

func reduceAppendChatMessage(st State, msg model.ChatMessage) State {
	next := st
	messages := make([]model.ChatMessage, len(st.ChatMessages)+1)
	copy(messages, st.ChatMessages)
	messages[len(st.ChatMessages)] = msg
	next.ChatMessages = messages
	return next
}

func reduceClearChatHistory(st State) State {
	next := st
	next.ChatMessages = []model.ChatMessage{}
	return next
}

func reduceSetGeneratedFiles(st State, files []model.GeneratedFile) State {
	next := st
	next.GeneratedFiles = model.CloneFiles(files)
	if next.GeneratedFiles == nil {
		next.GeneratedFiles = []model.GeneratedFile{}
	}
	if next.SelectedFile != "" && !containsPath(next.GeneratedFiles, next.SelectedFile) {
		next.SelectedFile = ""
	}
	return next
}

func reduceUpsertGeneratedFile(st State, file model.GeneratedFile) State {
	next := st
	files := make([]model.GeneratedFile, len(st.GeneratedFiles))
	copy(files, st.GeneratedFiles)

	// Replace in place to preserve the relative order of untouched entries.
	for i, f := range files {
		if f.Path == file.Path {
			files[i] = file
			next.GeneratedFiles = files
			return next
		}
	}
	next.GeneratedFiles = append(files, file)
	return next
}

func reduceSetUser(st State, user *model.UserProfile) State {
	next := st
	if user != nil {
		u := *user
		next.User = &u
	} else {
		next.User = nil
	}
	return next
}

func reduceHydrate(st State, projects []model.Project, user *model.UserProfile) State {
	next := reduceSetUser(st, user)
	next.Projects = model.CloneProjects(projects)
	if next.Projects == nil {
		next.Projects = []model.Project{}
	}
	if st.CurrentProject != nil && findProject(next.Projects, st.CurrentProject.ID) == nil {
		next.CurrentProject = nil
	}
	return next
}

func findProject(projects []model.Project, id string) *model.Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}

func containsPath(files []model.GeneratedFile, path string) bool {
	for _, f := range files {
		if f.Path == path {
			return true
		}
	}
	return false
}

// mergeProject applies a partial update onto a copy of the project and bumps
// UpdatedAt. The input project is left untouched.
func mergeProject(project model.Project, update ProjectUpdate, now time.Time) model.Project {
	merged := project.Clone()
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Files != nil {
		merged.Files = model.CloneFiles(update.Files)
	}
	if update.ChatHistory != nil {
		merged.ChatHistory = model.CloneMessages(update.ChatHistory)
	}
	if update.Status != nil {
		merged.Status = *update.Status
	}
	if update.Framework != nil {
		merged.Framework = *update.Framework
	}
	if update.Features != nil {
		features := make([]string, len(update.Features))
		copy(features, update.Features)
		merged.Features = features
	}
	if update.Manifest != nil {
		manifest := *update.Manifest
		merged.Manifest = &manifest
	}
	merged.UpdatedAt = now
	return merged
}
