// Package orchestrator sequences generation requests against the session
// state: admission through the single-flight gate, dispatch to the
// generation backend, and write-back of the result to the live state and the
// project captured at dispatch time.
package orchestrator

import (
	"context"
	"strings"

	"github.com/codelovable/codelovable/internal/events"
	"github.com/codelovable/codelovable/internal/generator"
	"github.com/codelovable/codelovable/internal/model"
	"github.com/codelovable/codelovable/internal/store"
)

// Orchestrator drives one generation at a time. It is safe for concurrent
// use; a second request while one is in flight is rejected with a busy
// error, never queued.
type Orchestrator struct {
	store  *store.Store
	client generator.Client
	bus    *events.EventBus
}

// Outcome reports what one successful generation did.
type Outcome struct {
	UserMessage      model.ChatMessage
	AssistantMessage model.ChatMessage
	Result           *model.GenerationResult
	Changes          []FileChange
	// ProjectID is the project the result was written back to; empty when
	// no project was current at dispatch or it vanished mid-flight.
	ProjectID string
}

// New creates an orchestrator. bus may be nil.
func New(st *store.Store, client generator.Client, bus *events.EventBus) *Orchestrator {
	return &Orchestrator{store: st, client: client, bus: bus}
}

func (o *Orchestrator) emit(eventType events.EventType, data interface{}) {
	if o.bus != nil {
		o.bus.Emit(eventType, data)
	}
}

// Generate runs one generation request: Idle -> Requesting -> terminal ->
// Idle. The user message is appended and the in-flight flag raised as one
// atomic step before dispatch; the assistant message is appended after
// resolution, so transcript order always matches request order.
func (o *Orchestrator) Generate(ctx context.Context, prompt string, mode model.GenerationMode) (*Outcome, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, store.NewError(store.KindValidation, "prompt must not be empty")
	}

	// Ambient context is captured at dispatch. The result resolves
	// against this project id, not whatever is current at completion.
	var projectID string
	var prevStatus model.ProjectStatus
	framework := "nextjs"
	var features []string
	if current, ok := o.store.CurrentProject(); ok {
		projectID = current.ID
		prevStatus = current.Status
		if current.Framework != "" {
			framework = current.Framework
		}
		features = current.Features
	}

	before := o.store.GeneratedFiles()

	req := model.GenerationRequest{
		Prompt:    prompt,
		ProjectID: projectID,
		Framework: framework,
		Features:  features,
		Mode:      mode,
	}
	if mode == model.ModeModify || mode == model.ModeDebug {
		req.ExistingFiles = before
	}

	userMsg, err := o.store.BeginGeneration(prompt)
	if err != nil {
		return nil, err
	}

	if projectID != "" {
		generating := model.StatusGenerating
		// Ignore not-found: the project may already be gone.
		_, _ = o.store.UpdateProject(projectID, store.ProjectUpdate{Status: &generating})
	}

	result, genErr := o.client.RequestGeneration(ctx, req)
	if genErr != nil {
		o.failGeneration(projectID, prevStatus, genErr)
		return nil, genErr
	}

	outcome := o.completeGeneration(userMsg, projectID, before, result, mode)
	return outcome, nil
}

// completeGeneration applies a successful result: assistant message, working
// set replacement, and write-back to the dispatch-time project if it still
// exists.
func (o *Orchestrator) completeGeneration(userMsg model.ChatMessage, projectID string, before []model.GeneratedFile, result *model.GenerationResult, mode model.GenerationMode) *Outcome {
	metadata := &model.MessageMetadata{
		GeneratedFiles:   result.Files,
		Suggestions:      result.Suggestions,
		IsCodeGeneration: true,
		IsDebugging:      mode == model.ModeDebug,
	}
	assistantMsg := o.store.AppendChatMessage(model.RoleAssistant, result.Explanation, metadata)
	o.store.SetGeneratedFiles(result.Files)

	appliedTo := ""
	if projectID != "" && o.store.HasProject(projectID) {
		completed := model.StatusCompleted
		update := store.ProjectUpdate{
			Files:       result.Files,
			Status:      &completed,
			ChatHistory: o.store.ChatMessages(),
		}
		if result.Manifest != nil {
			update.Manifest = result.Manifest
		}
		if _, err := o.store.UpdateProject(projectID, update); err == nil {
			appliedTo = projectID
		}
		// A not-found here means the project was deleted between the
		// existence check and the update; the result is discarded
		// silently, exactly as if it had vanished earlier.
	}

	o.store.EndGeneration()
	o.emit(events.GenerationSucceeded, appliedTo)

	return &Outcome{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		Result:           result,
		Changes:          SummarizeChanges(before, result.Files),
		ProjectID:        appliedTo,
	}
}

// failGeneration applies a failure: a generic assistant notice (raw backend
// diagnostics never reach the transcript), the project status restored to
// its pre-request value, and the gate reopened.
func (o *Orchestrator) failGeneration(projectID string, prevStatus model.ProjectStatus, genErr error) {
	o.store.AppendChatMessage(model.RoleAssistant, failureNotice(genErr), nil)

	if projectID != "" && o.store.HasProject(projectID) {
		status := prevStatus
		if status == "" {
			status = model.StatusDraft
		}
		_, _ = o.store.UpdateProject(projectID, store.ProjectUpdate{Status: &status})
	}

	o.store.EndGeneration()
	o.emit(events.GenerationFailed, generator.KindOf(genErr))
}

// failureNotice maps an error kind to the fixed transcript wording.
func failureNotice(err error) string {
	switch generator.KindOf(err) {
	case generator.KindValidation:
		return "Sorry, I couldn't process that request. Please adjust your prompt and try again."
	case generator.KindConfig:
		return "Sorry, I couldn't reach the code generation service. Please make sure your API key is configured and try again."
	case generator.KindBackendRejected:
		return "Sorry, the code generation service rejected this request. Please adjust your prompt and try again."
	case generator.KindMalformedResponse:
		return "Sorry, I received an unusable response from the code generation service. Please try again."
	default:
		return "Sorry, I encountered an error while generating your code. Please try again."
	}
}
