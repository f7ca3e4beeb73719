// Package filetree derives a hierarchical folder/file view from the flat
// list of generated files a project holds.
package filetree

import (
	"strings"

	"github.com/codelovable/codelovable/internal/model"
)

// treeNode is the mutable build representation; it never escapes Build.
type treeNode struct {
	name     string
	path     string
	folder   bool
	content  string
	language string
	children []*treeNode
}

// Build converts a flat file list into a forest of tree nodes. It is pure
// and deterministic: folders are deduplicated by their running prefix path,
// sibling order follows first appearance among the input files, and files
// are never merged — two inputs with the same path yield two nodes, so
// callers that care should pre-deduplicate by path keeping the last write.
func Build(files []model.GeneratedFile) []model.FileTreeNode {
	var roots []*treeNode
	// Scoped to this call; no cross-build cache.
	folders := make(map[string]*treeNode)

	for _, file := range files {
		parts := strings.Split(file.Path, "/")
		prefix := ""
		for i, part := range parts {
			parentPath := prefix
			if prefix == "" {
				prefix = part
			} else {
				prefix = prefix + "/" + part
			}

			if i == len(parts)-1 {
				node := &treeNode{
					name:     part,
					path:     file.Path,
					content:  file.Content,
					language: file.Language,
				}
				if parentPath == "" {
					roots = append(roots, node)
				} else if parent := folders[parentPath]; parent != nil {
					parent.children = append(parent.children, node)
				}
				continue
			}

			if _, ok := folders[prefix]; !ok {
				node := &treeNode{name: part, path: prefix, folder: true}
				folders[prefix] = node
				if parentPath == "" {
					roots = append(roots, node)
				} else if parent := folders[parentPath]; parent != nil {
					parent.children = append(parent.children, node)
				}
			}
		}
	}

	return materialize(roots)
}

func materialize(nodes []*treeNode) []model.FileTreeNode {
	out := make([]model.FileTreeNode, len(nodes))
	for i, n := range nodes {
		if n.folder {
			out[i] = model.FileTreeNode{
				Name:     n.name,
				Path:     n.path,
				Type:     "folder",
				Children: materialize(n.children),
			}
			continue
		}
		out[i] = model.FileTreeNode{
			Name:     n.name,
			Path:     n.path,
			Type:     "file",
			Content:  n.content,
			Language: n.language,
		}
	}
	return out
}

// CollectFolderPaths gathers the path of every folder node in the forest.
// Used to seed an "all expanded" view state.
func CollectFolderPaths(nodes []model.FileTreeNode) map[string]bool {
	paths := make(map[string]bool)
	var walk func(nodes []model.FileTreeNode)
	walk = func(nodes []model.FileTreeNode) {
		for _, n := range nodes {
			if n.Type == "folder" {
				paths[n.Path] = true
				walk(n.Children)
			}
		}
	}
	walk(nodes)
	return paths
}
