package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codelovable/codelovable/internal/model"
	"github.com/codelovable/codelovable/internal/store"
)

var (
	newDescription string
	newFramework   string
	newFeatures    []string
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		framework := newFramework
		if framework == "" {
			framework = a.cfg.DefaultFramework
		}

		project, err := a.store.CreateProject(store.ProjectDraft{
			Name:        args[0],
			Description: newDescription,
			Framework:   framework,
			Features:    newFeatures,
		})
		if err != nil {
			return err
		}
		if err := a.save(); err != nil {
			return err
		}
		if err := a.writeSelection(project.ID); err != nil {
			return err
		}

		fmt.Printf("Created project %s (%s)\n", color.GreenString(project.Name), project.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		projects := a.store.Projects()
		if len(projects) == 0 {
			fmt.Println("No projects yet. Create one with 'codelovable new'.")
			return nil
		}

		selected := a.readSelection()
		for _, p := range projects {
			marker := "  "
			if p.ID == selected {
				marker = color.CyanString("* ")
			}
			fmt.Printf("%s%s  %s  %s  %d files\n",
				marker, p.ID, color.New(color.Bold).Sprint(p.Name), statusColor(p.Status), len(p.Files))
		}
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select [name]",
	Short: "Select the project prompts apply to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		project, err := a.resolveProject(args[0])
		if err != nil {
			return err
		}
		if _, err := a.store.SelectProject(project.ID); err != nil {
			return err
		}
		if err := a.writeSelection(project.ID); err != nil {
			return err
		}

		fmt.Printf("Selected %s\n", color.GreenString(project.Name))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		project, err := a.resolveProject(args[0])
		if err != nil {
			return err
		}
		if err := a.store.DeleteProject(project.ID); err != nil {
			return err
		}
		if err := a.save(); err != nil {
			return err
		}
		if a.readSelection() == project.ID {
			if err := a.writeSelection(""); err != nil {
				return err
			}
		}

		fmt.Printf("Deleted %s\n", project.Name)
		return nil
	},
}

// statusColor renders a project status with its conventional color.
func statusColor(status model.ProjectStatus) string {
	switch status {
	case model.StatusCompleted:
		return color.GreenString(string(status))
	case model.StatusGenerating:
		return color.YellowString(string(status))
	case model.StatusDeployed:
		return color.CyanString(string(status))
	default:
		return string(status)
	}
}

func init() {
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Project description")
	newCmd.Flags().StringVarP(&newFramework, "framework", "f", "", "Target framework (defaults to config default_framework)")
	newCmd.Flags().StringSliceVar(&newFeatures, "feature", nil, "Feature to include (repeatable)")
}
