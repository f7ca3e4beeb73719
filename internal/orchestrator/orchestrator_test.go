package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codelovable/codelovable/internal/events"
	"github.com/codelovable/codelovable/internal/generator"
	"github.com/codelovable/codelovable/internal/model"
	"github.com/codelovable/codelovable/internal/store"
)

// fakeClient returns a canned result or error, optionally blocking until
// released so tests can interleave state changes mid-flight.
type fakeClient struct {
	mu      sync.Mutex
	result  *model.GenerationResult
	err     error
	gate    chan struct{}
	lastReq model.GenerationRequest
	calls   int
}

func (f *fakeClient) RequestGeneration(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	f.mu.Lock()
	f.lastReq = req
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeClient) ModelName() string { return "fake-model" }
func (f *fakeClient) IsAvailable() bool { return true }

func sampleResult() *model.GenerationResult {
	return &model.GenerationResult{
		Files: []model.GeneratedFile{
			{Path: "app/page.tsx", Content: "export default function Page() {}\n", Language: "typescript", Description: "Landing page"},
			{Path: "app/layout.tsx", Content: "export default function Layout() {}\n", Language: "typescript", Description: "Root layout"},
		},
		Explanation: "Built a landing page with a root layout.",
		Suggestions: []string{"Add a navigation bar"},
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewStore(nil)
}

func TestGenerateSuccess(t *testing.T) {
	st := newTestStore(t)
	project, err := st.CreateProject(store.ProjectDraft{Name: "Shop", Framework: "nextjs"})
	if err != nil {
		t.Fatal(err)
	}

	client := &fakeClient{result: sampleResult()}
	orch := New(st, client, nil)

	outcome, err := orch.Generate(context.Background(), "Build a shop", model.ModeGenerate)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if outcome.ProjectID != project.ID {
		t.Errorf("expected result applied to %s, got %q", project.ID, outcome.ProjectID)
	}

	messages := st.ChatMessages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != model.RoleUser || messages[0].Content != "Build a shop" {
		t.Errorf("unexpected user message: %+v", messages[0])
	}
	if messages[1].Role != model.RoleAssistant {
		t.Errorf("expected assistant reply, got role %q", messages[1].Role)
	}
	meta := messages[1].Metadata
	if meta == nil || !meta.IsCodeGeneration || len(meta.GeneratedFiles) != 2 {
		t.Errorf("unexpected assistant metadata: %+v", meta)
	}

	if files := st.GeneratedFiles(); len(files) != 2 {
		t.Errorf("expected working set of 2 files, got %d", len(files))
	}

	updated, err := st.SelectProject(project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("expected status completed, got %q", updated.Status)
	}
	if len(updated.Files) != 2 {
		t.Errorf("expected project files written back, got %d", len(updated.Files))
	}
	if len(updated.ChatHistory) != 2 {
		t.Errorf("expected chat history written back, got %d", len(updated.ChatHistory))
	}

	if st.IsGenerating() {
		t.Error("generation flag still raised after success")
	}
}

func TestGenerateEmitsLifecycleEvents(t *testing.T) {
	bus := events.NewEventBus()
	st := store.NewStore(bus)
	if _, err := st.CreateProject(store.ProjectDraft{Name: "Shop"}); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var seen []events.EventType
	record := func(e events.Event) {
		mu.Lock()
		seen = append(seen, e.Type)
		mu.Unlock()
	}
	bus.Subscribe(events.GenerationStarted, record)
	bus.Subscribe(events.GenerationSucceeded, record)

	orch := New(st, &fakeClient{result: sampleResult()}, bus)
	if _, err := orch.Generate(context.Background(), "Build a shop", model.ModeGenerate); err != nil {
		t.Fatal(err)
	}
	bus.Flush()

	mu.Lock()
	defer mu.Unlock()
	has := func(want events.EventType) bool {
		for _, typ := range seen {
			if typ == want {
				return true
			}
		}
		return false
	}
	if !has(events.GenerationStarted) || !has(events.GenerationSucceeded) {
		t.Errorf("lifecycle events not delivered: %v", seen)
	}
}

func TestGenerateFailureRestoresStatus(t *testing.T) {
	st := newTestStore(t)
	project, err := st.CreateProject(store.ProjectDraft{Name: "Shop"})
	if err != nil {
		t.Fatal(err)
	}

	client := &fakeClient{err: generator.NewError(generator.KindTransport, errors.New("connection reset"))}
	orch := New(st, client, nil)

	if _, err := orch.Generate(context.Background(), "Build a shop", model.ModeGenerate); err == nil {
		t.Fatal("expected error")
	}

	messages := st.ChatMessages()
	if len(messages) != 2 {
		t.Fatalf("expected user message plus failure notice, got %d messages", len(messages))
	}
	notice := messages[1]
	if notice.Role != model.RoleAssistant {
		t.Errorf("expected assistant failure notice, got role %q", notice.Role)
	}
	if strings.Contains(notice.Content, "connection reset") {
		t.Error("backend diagnostics leaked into the transcript")
	}
	if !strings.Contains(notice.Content, "try again") {
		t.Errorf("unexpected notice wording: %q", notice.Content)
	}

	restored, err := st.SelectProject(project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Status != model.StatusDraft {
		t.Errorf("expected status restored to draft, got %q", restored.Status)
	}

	if st.IsGenerating() {
		t.Error("generation flag still raised after failure")
	}
}

func TestGenerateEmptyPrompt(t *testing.T) {
	st := newTestStore(t)
	client := &fakeClient{result: sampleResult()}
	orch := New(st, client, nil)

	_, err := orch.Generate(context.Background(), "   ", model.ModeGenerate)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if store.KindOf(err) != store.KindValidation {
		t.Errorf("expected validation kind, got %v", store.KindOf(err))
	}
	if client.calls != 0 {
		t.Error("backend called despite invalid prompt")
	}
	if len(st.ChatMessages()) != 0 {
		t.Error("transcript changed despite invalid prompt")
	}
}

func TestGenerateSingleFlight(t *testing.T) {
	st := newTestStore(t)
	gate := make(chan struct{})
	client := &fakeClient{result: sampleResult(), gate: gate}
	orch := New(st, client, nil)

	done := make(chan error, 1)
	go func() {
		_, err := orch.Generate(context.Background(), "First", model.ModeGenerate)
		done <- err
	}()

	// Wait for the first request to reach the backend.
	for {
		client.mu.Lock()
		started := client.calls > 0
		client.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := orch.Generate(context.Background(), "Second", model.ModeGenerate)
	if !store.IsBusy(err) {
		t.Fatalf("expected busy error, got %v", err)
	}
	if len(st.ChatMessages()) != 1 {
		t.Errorf("rejected request appended a message: %d messages", len(st.ChatMessages()))
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	// The gate reopens once the first request resolves.
	client.gate = nil
	if _, err := orch.Generate(context.Background(), "Third", model.ModeGenerate); err != nil {
		t.Fatalf("request after completion failed: %v", err)
	}
}

func TestGenerateDiscardsResultForDeletedProject(t *testing.T) {
	st := newTestStore(t)
	project, err := st.CreateProject(store.ProjectDraft{Name: "Doomed"})
	if err != nil {
		t.Fatal(err)
	}

	gate := make(chan struct{})
	client := &fakeClient{result: sampleResult(), gate: gate}
	orch := New(st, client, nil)

	done := make(chan *Outcome, 1)
	go func() {
		outcome, err := orch.Generate(context.Background(), "Build it", model.ModeGenerate)
		if err != nil {
			t.Errorf("Generate failed: %v", err)
		}
		done <- outcome
	}()

	for {
		client.mu.Lock()
		started := client.calls > 0
		client.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := st.DeleteProject(project.ID); err != nil {
		t.Fatal(err)
	}
	close(gate)

	outcome := <-done
	if outcome.ProjectID != "" {
		t.Errorf("result written back to a deleted project: %q", outcome.ProjectID)
	}

	// The transcript and working set still advance.
	if len(st.ChatMessages()) != 2 {
		t.Errorf("expected 2 messages, got %d", len(st.ChatMessages()))
	}
	if len(st.GeneratedFiles()) != 2 {
		t.Errorf("expected working set replaced, got %d files", len(st.GeneratedFiles()))
	}
}

func TestGenerateTargetsProjectCapturedAtDispatch(t *testing.T) {
	st := newTestStore(t)
	first, err := st.CreateProject(store.ProjectDraft{Name: "First"})
	if err != nil {
		t.Fatal(err)
	}

	gate := make(chan struct{})
	client := &fakeClient{result: sampleResult(), gate: gate}
	orch := New(st, client, nil)

	done := make(chan *Outcome, 1)
	go func() {
		outcome, err := orch.Generate(context.Background(), "Build it", model.ModeGenerate)
		if err != nil {
			t.Errorf("Generate failed: %v", err)
		}
		done <- outcome
	}()

	for {
		client.mu.Lock()
		started := client.calls > 0
		client.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	second, err := st.CreateProject(store.ProjectDraft{Name: "Second"})
	if err != nil {
		t.Fatal(err)
	}
	close(gate)

	outcome := <-done
	if outcome.ProjectID != first.ID {
		t.Errorf("result applied to %q, want dispatch-time project %s", outcome.ProjectID, first.ID)
	}

	untouched, err := st.SelectProject(second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(untouched.Files) != 0 {
		t.Error("files leaked into the project created mid-flight")
	}
}

func TestGenerateModifyAttachesExistingFiles(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.CreateProject(store.ProjectDraft{Name: "Shop"}); err != nil {
		t.Fatal(err)
	}
	st.SetGeneratedFiles([]model.GeneratedFile{{Path: "app/page.tsx", Content: "old"}})

	client := &fakeClient{result: sampleResult()}
	orch := New(st, client, nil)

	if _, err := orch.Generate(context.Background(), "Change the header", model.ModeModify); err != nil {
		t.Fatal(err)
	}
	if len(client.lastReq.ExistingFiles) != 1 {
		t.Errorf("expected existing files on the request, got %d", len(client.lastReq.ExistingFiles))
	}
	if client.lastReq.Mode != model.ModeModify {
		t.Errorf("unexpected mode %q", client.lastReq.Mode)
	}

	client.lastReq = model.GenerationRequest{}
	if _, err := orch.Generate(context.Background(), "Start over", model.ModeGenerate); err != nil {
		t.Fatal(err)
	}
	if len(client.lastReq.ExistingFiles) != 0 {
		t.Error("fresh generation carried existing files")
	}
}
