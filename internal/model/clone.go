package model

// CloneFiles returns an independent copy of a file list.
func CloneFiles(files []GeneratedFile) []GeneratedFile {
	if files == nil {
		return nil
	}
	out := make([]GeneratedFile, len(files))
	copy(out, files)
	return out
}

// CloneMessages returns an independent copy of a transcript. Metadata is
// copied too so a held snapshot can never observe later edits.
func CloneMessages(messages []ChatMessage) []ChatMessage {
	if messages == nil {
		return nil
	}
	out := make([]ChatMessage, len(messages))
	for i, msg := range messages {
		out[i] = msg
		if msg.Metadata != nil {
			meta := *msg.Metadata
			meta.GeneratedFiles = CloneFiles(msg.Metadata.GeneratedFiles)
			meta.Suggestions = cloneStrings(msg.Metadata.Suggestions)
			out[i].Metadata = &meta
		}
	}
	return out
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	out := p
	out.Files = CloneFiles(p.Files)
	out.ChatHistory = CloneMessages(p.ChatHistory)
	out.Features = cloneStrings(p.Features)
	if p.Manifest != nil {
		manifest := PackageManifest{
			Dependencies:    cloneStringMap(p.Manifest.Dependencies),
			DevDependencies: cloneStringMap(p.Manifest.DevDependencies),
			Scripts:         cloneStringMap(p.Manifest.Scripts),
		}
		out.Manifest = &manifest
	}
	return out
}

// CloneProjects returns an independent copy of a project list.
func CloneProjects(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneStringMap(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
