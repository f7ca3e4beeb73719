package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/codelovable/codelovable/internal/model"
)

func TestBuildUserPrompt(t *testing.T) {
	req := model.GenerationRequest{
		Prompt:    "Build a todo list app",
		Framework: "nextjs",
		Mode:      model.ModeGenerate,
		Features:  []string{"auth", "dark mode"},
		ExistingFiles: []model.GeneratedFile{
			{Path: "app/page.tsx", Description: "Landing page"},
			{Path: "lib/utils.ts"},
		},
	}

	prompt := BuildUserPrompt(req)

	for _, want := range []string{
		"Generate a nextjs application",
		"Build a todo list app",
		"Required features: auth, dark mode",
		"- app/page.tsx: Landing page",
		"- lib/utils.ts",
		"Mode: generate",
		"Framework: nextjs",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildUserPromptOmitsEmptySections(t *testing.T) {
	prompt := BuildUserPrompt(model.GenerationRequest{
		Prompt:    "Build something",
		Framework: "react",
		Mode:      model.ModeGenerate,
	})

	if strings.Contains(prompt, "Required features") {
		t.Error("Prompt should not mention features when none are requested")
	}
	if strings.Contains(prompt, "Existing files") {
		t.Error("Prompt should not mention existing files when none are attached")
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerationRequest
		wantErr bool
	}{
		{"valid", model.GenerationRequest{Prompt: "x", Framework: "react", Mode: model.ModeGenerate}, false},
		{"empty prompt", model.GenerationRequest{Prompt: "  ", Framework: "react", Mode: model.ModeGenerate}, true},
		{"bad mode", model.GenerationRequest{Prompt: "x", Framework: "react", Mode: "compile"}, true},
		{"debug mode", model.GenerationRequest{Prompt: "x", Framework: "react", Mode: model.ModeDebug}, false},
	}

	for _, test := range tests {
		err := ValidateRequest(test.req)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: ValidateRequest error = %v, wantErr %v", test.name, err, test.wantErr)
		}
		// Bad input is a validation failure, never a config one: the
		// user must not be told to check credentials.
		if err != nil && KindOf(err) != KindValidation {
			t.Errorf("%s: kind = %v, want %v", test.name, KindOf(err), KindValidation)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	text := "Here is your app:\n```json\n{\"files\": []}\n```\nEnjoy!"
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if raw != `{"files": []}` {
		t.Errorf("ExtractJSON = %q", raw)
	}

	if _, err := ExtractJSON("no json here"); err == nil {
		t.Error("Expected error for text without JSON")
	}
}

func TestParseResultValid(t *testing.T) {
	text := `{
		"files": [{"path": "index.ts", "content": "x", "language": "typescript"}],
		"explanation": "A single entry point",
		"suggestions": ["add tests"],
		"packageJson": {"dependencies": {"react": "18.0.0"}}
	}`

	result, err := ParseResult(text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Path != "index.ts" {
		t.Errorf("Files not parsed: %+v", result.Files)
	}
	if result.Explanation != "A single entry point" {
		t.Errorf("Explanation = %q", result.Explanation)
	}
	if result.Manifest == nil || result.Manifest.Dependencies["react"] != "18.0.0" {
		t.Errorf("Manifest not parsed: %+v", result.Manifest)
	}
}

func TestParseResultMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "plain text only"},
		{"truncated json", `{"files": [{"path": "a.ts"`},
		{"missing files", `{"explanation": "hi"}`},
		{"missing explanation", `{"files": []}`},
		{"absolute path", `{"files": [{"path": "/etc/passwd", "content": "", "language": ""}], "explanation": "x"}`},
		{"empty path", `{"files": [{"path": "", "content": "", "language": ""}], "explanation": "x"}`},
		{"traversal", `{"files": [{"path": "../../escape.ts", "content": "", "language": ""}], "explanation": "x"}`},
		{"backslash", `{"files": [{"path": "src\\main.ts", "content": "", "language": ""}], "explanation": "x"}`},
	}

	for _, test := range tests {
		_, err := ParseResult(test.text)
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if KindOf(err) != KindMalformedResponse {
			t.Errorf("%s: kind = %s, want %s", test.name, KindOf(err), KindMalformedResponse)
		}
	}
}

func TestParseResultDefaultsSuggestions(t *testing.T) {
	result, err := ParseResult(`{"files": [], "explanation": "nothing to do"}`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Suggestions == nil {
		t.Error("Suggestions should default to an empty slice")
	}
}

func TestCreateClient(t *testing.T) {
	client, err := CreateClient("anthropic:claude-3-sonnet-20240229", "test-key", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if client.ModelName() != "claude-3-sonnet-20240229" {
		t.Errorf("ModelName = %q", client.ModelName())
	}
	if !client.IsAvailable() {
		t.Error("Client with key and model should be available")
	}

	if _, err := CreateClient("claude-3-sonnet", "key", ""); err == nil {
		t.Error("Expected error for model string without provider prefix")
	}

	if _, err := CreateClient("cohere:command", "key", ""); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

func TestErrorKinds(t *testing.T) {
	err := Errorf(KindBackendRejected, "quota exceeded")
	if KindOf(err) != KindBackendRejected {
		t.Errorf("KindOf = %s", KindOf(err))
	}

	wrapped := NewError(KindConfig, errors.New("missing key"))
	var genErr *Error
	if !errors.As(wrapped, &genErr) {
		t.Fatal("errors.As failed for *Error")
	}
	if genErr.Kind != KindConfig {
		t.Errorf("Kind = %s", genErr.Kind)
	}

	if KindOf(errors.New("plain")) != KindTransport {
		t.Error("Untyped errors should default to transport kind")
	}
}
