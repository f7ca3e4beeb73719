package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codelovable/codelovable/internal/archive"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Export a project's files as a zip archive",
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

		path, err := archive.ExportProject(project, exportDir)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %s to %s\n", project.Name, color.GreenString(path))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "Directory to write the archive to")
}
