package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codelovable/codelovable/internal/filetree"
	"github.com/codelovable/codelovable/internal/model"
	"github.com/codelovable/codelovable/internal/store"
)

// projectHistoryUpdate builds an update that replaces the stored transcript.
// The slice is never nil so the replacement always applies.
func projectHistoryUpdate(history []model.ChatMessage) store.ProjectUpdate {
	if history == nil {
		history = []model.ChatMessage{}
	}
	return store.ProjectUpdate{ChatHistory: history}
}

var chatClear bool

var chatCmd = &cobra.Command{
	Use:   "chat [name]",
	Short: "Show a project's chat transcript",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		project, err := a.resolveProject(arg)
		if err != nil {
			return err
		}

		if chatClear {
			if _, err := a.store.SelectProject(project.ID); err != nil {
				return err
			}
			a.store.ClearChatHistory()
			cleared := a.store.ChatMessages()
			if _, err := a.store.UpdateProject(project.ID, projectHistoryUpdate(cleared)); err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}
			fmt.Printf("Cleared chat history for %s\n", project.Name)
			return nil
		}

		if len(project.ChatHistory) == 0 {
			fmt.Println("No messages yet.")
			return nil
		}

		for _, msg := range project.ChatHistory {
			printMessage(msg)
		}
		return nil
	},
}

func printMessage(msg model.ChatMessage) {
	label := color.CyanString("you")
	if msg.Role == model.RoleAssistant {
		label = color.MagentaString("codelovable")
	}
	fmt.Printf("[%s] %s\n", label, msg.Timestamp.Local().Format("2006-01-02 15:04"))
	fmt.Println(msg.Content)
	if msg.Metadata != nil && len(msg.Metadata.GeneratedFiles) > 0 {
		fmt.Println()
		printTree(filetree.Build(msg.Metadata.GeneratedFiles), "  ")
	}
	fmt.Println()
}

func printTree(nodes []model.FileTreeNode, indent string) {
	for _, node := range nodes {
		if node.Type == "folder" {
			fmt.Printf("%s%s/\n", indent, node.Name)
			printTree(node.Children, indent+"  ")
		} else {
			fmt.Printf("%s%s\n", indent, node.Name)
		}
	}
}

func init() {
	chatCmd.Flags().BoolVar(&chatClear, "clear", false, "Clear the transcript instead of printing it")
}
