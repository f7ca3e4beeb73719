package model

import "time"

// GeneratedFile is one file produced by a generation request. Identity is
// Path: a posix-style relative path with no leading slash. A project's file
// list holds unique paths at any instant; last write wins on update.
type GeneratedFile struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Language    string `json:"language"`
	Description string `json:"description,omitempty"`
}

// MessageMetadata carries optional generation context on a chat message.
type MessageMetadata struct {
	GeneratedFiles   []GeneratedFile `json:"generated_files,omitempty"`
	Suggestions      []string        `json:"suggestions,omitempty"`
	IsCodeGeneration bool            `json:"is_code_generation,omitempty"`
	IsDebugging      bool            `json:"is_debugging,omitempty"`
}

// ChatMessage is a single entry in a transcript. Messages are immutable once
// created and ordered by creation; insertion order is display order.
type ChatMessage struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"` // "user" or "assistant"
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// ProjectStatus tracks where a project is in its lifecycle.
type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusGenerating ProjectStatus = "generating"
	StatusCompleted  ProjectStatus = "completed"
	StatusDeployed   ProjectStatus = "deployed"
)

// PackageManifest mirrors the package.json shape a generation backend may
// return alongside the files.
type PackageManifest struct {
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
}

// Project is the durable record of a generated application.
// Invariant: UpdatedAt >= CreatedAt; every mutation bumps UpdatedAt.
type Project struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Files       []GeneratedFile  `json:"files"`
	ChatHistory []ChatMessage    `json:"chat_history"`
	Status      ProjectStatus    `json:"status"`
	Framework   string           `json:"framework"`
	Features    []string         `json:"features"`
	Manifest    *PackageManifest `json:"manifest,omitempty"`
}

// APIUsage tracks a user's generation quota window.
type APIUsage struct {
	Current   int       `json:"current"`
	Limit     int       `json:"limit"`
	ResetDate time.Time `json:"reset_date"`
}

// UserProfile is the persisted user record.
type UserProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Avatar      string   `json:"avatar,omitempty"`
	Tier        string   `json:"tier"` // "free", "pro", "team"
	Projects    int      `json:"projects_count"`
	MaxProjects int      `json:"max_projects"`
	APIUsage    APIUsage `json:"api_usage"`
}

// GenerationMode selects how the backend should treat the prompt.
type GenerationMode string

const (
	ModeGenerate GenerationMode = "generate"
	ModeDebug    GenerationMode = "debug"
	ModeModify   GenerationMode = "modify"
)

// GenerationRequest is one user-initiated call to produce or modify code.
// ProjectID is informational at the backend boundary; the orchestrator owns
// associating the result with the right project.
type GenerationRequest struct {
	Prompt        string          `json:"prompt"`
	ProjectID     string          `json:"project_id,omitempty"`
	Framework     string          `json:"framework"`
	Features      []string        `json:"features,omitempty"`
	ExistingFiles []GeneratedFile `json:"existing_files,omitempty"`
	Mode          GenerationMode  `json:"mode"`
}

// GenerationResult is a well-formed backend response.
type GenerationResult struct {
	Files       []GeneratedFile  `json:"files"`
	Explanation string           `json:"explanation"`
	Suggestions []string         `json:"suggestions"`
	Manifest    *PackageManifest `json:"packageJson,omitempty"`
}

// FileTreeNode is one node of the hierarchical view derived from a flat file
// list. Folders carry children and no content; files the reverse. A node's
// Path is the "/"-joined concatenation of ancestor names plus its own name.
type FileTreeNode struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Type     string         `json:"type"` // "file" or "folder"
	Children []FileTreeNode `json:"children,omitempty"`
	Content  string         `json:"content,omitempty"`
	Language string         `json:"language,omitempty"`
}

// Roles for chat messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
