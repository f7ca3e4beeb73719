package generator

import (
	"encoding/json"
	"strings"

	"github.com/codelovable/codelovable/internal/model"
)

// ExtractJSON pulls the JSON object out of a model completion. Backends wrap
// the payload in prose or code fences often enough that the first '{' to the
// last '}' span is taken rather than requiring a bare object.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", Errorf(KindMalformedResponse, "no JSON object found in backend response")
	}
	return text[start : end+1], nil
}

// ParseResult decodes and validates a backend completion. The response is
// untrusted input: every file entry must satisfy the GeneratedFile
// invariants before the result is admitted into the store.
func ParseResult(text string) (*model.GenerationResult, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var result model.GenerationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, Errorf(KindMalformedResponse, "backend response is not valid JSON: %v", err)
	}

	if err := ValidateResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateResult checks the GenerationResult contract: files (if any) carry
// valid relative paths, and the explanation is present.
func ValidateResult(result *model.GenerationResult) error {
	if result.Files == nil {
		return Errorf(KindMalformedResponse, "backend response missing files array")
	}
	for i, f := range result.Files {
		if err := ValidateFilePath(f.Path); err != nil {
			return Errorf(KindMalformedResponse, "file %d: %v", i, err)
		}
	}
	if strings.TrimSpace(result.Explanation) == "" {
		return Errorf(KindMalformedResponse, "backend response missing explanation")
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return nil
}

// ValidateFilePath enforces the generated-file path invariant: a non-empty,
// posix-style relative path with no leading slash and no traversal.
func ValidateFilePath(path string) error {
	if path == "" {
		return Errorf(KindMalformedResponse, "file path must not be empty")
	}
	if strings.HasPrefix(path, "/") {
		return Errorf(KindMalformedResponse, "file path must be relative: %s", path)
	}
	if strings.Contains(path, "\\") {
		return Errorf(KindMalformedResponse, "file path must use forward slashes: %s", path)
	}
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			return Errorf(KindMalformedResponse, "file path has an empty segment: %s", path)
		}
		if part == ".." {
			return Errorf(KindMalformedResponse, "file path must not traverse upward: %s", path)
		}
	}
	return nil
}
