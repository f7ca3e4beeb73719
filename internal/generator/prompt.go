package generator

import (
	"fmt"
	"strings"

	"github.com/codelovable/codelovable/internal/model"
)

// SystemPrompt instructs the backend to answer with the exact JSON shape
// ParseResult expects.
const SystemPrompt = `You are an expert full-stack developer. Generate complete, production-ready code based on user requirements.

IMPORTANT RULES:
1. Always generate complete, functional files
2. Include all necessary imports and dependencies
3. Follow the conventions of the requested framework
4. Include proper error handling
5. Generate a package.json with all required dependencies when applicable
6. Provide a clear file structure

When generating files, format your response as JSON with this exact structure:
{
  "files": [
    {
      "path": "relative/path/to/file.tsx",
      "content": "file content here",
      "language": "typescript",
      "description": "Brief description of the file"
    }
  ],
  "explanation": "Clear explanation of what was generated",
  "suggestions": ["suggestion 1", "suggestion 2"],
  "packageJson": {
    "dependencies": {"package": "version"},
    "devDependencies": {"package": "version"},
    "scripts": {"script": "command"}
  }
}`

// BuildUserPrompt assembles the user-facing prompt from the request:
// the free-form requirement text plus framework, feature list, existing
// files (for modify/debug modes) and the mode itself.
func BuildUserPrompt(req model.GenerationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a %s application with the following requirements:\n\n", req.Framework)
	b.WriteString(req.Prompt)
	b.WriteString("\n")

	if len(req.Features) > 0 {
		fmt.Fprintf(&b, "\nRequired features: %s\n", strings.Join(req.Features, ", "))
	}

	if len(req.ExistingFiles) > 0 {
		b.WriteString("\nExisting files to consider:\n")
		for _, f := range req.ExistingFiles {
			if f.Description != "" {
				fmt.Fprintf(&b, "- %s: %s\n", f.Path, f.Description)
			} else {
				fmt.Fprintf(&b, "- %s\n", f.Path)
			}
		}
	}

	fmt.Fprintf(&b, "\nMode: %s\nFramework: %s\n", req.Mode, req.Framework)
	b.WriteString("\nPlease generate all necessary files with complete, working code.")

	return b.String()
}

// ValidateRequest checks a request before it reaches a backend.
func ValidateRequest(req model.GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return Errorf(KindValidation, "generation prompt must not be empty")
	}
	switch req.Mode {
	case model.ModeGenerate, model.ModeDebug, model.ModeModify:
	default:
		return Errorf(KindValidation, "unknown generation mode: %s", req.Mode)
	}
	return nil
}
