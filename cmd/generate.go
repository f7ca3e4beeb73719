package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codelovable/codelovable/internal/events"
	"github.com/codelovable/codelovable/internal/generator"
	"github.com/codelovable/codelovable/internal/model"
	"github.com/codelovable/codelovable/internal/orchestrator"
)

var generateMode string

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate code for the selected project",
	Long: `Generate sends a prompt to the configured backend and writes the
resulting files to the selected project. Use --mode modify to evolve the
project's existing files, or --mode debug to have issues in them fixed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		mode, err := parseMode(generateMode)
		if err != nil {
			return err
		}

		client, err := a.client()
		if err != nil {
			return err
		}

		// Progress comes off the bus so it reflects what actually
		// happened in the store, not what this command hopes happened.
		a.bus.Subscribe(events.GenerationStarted, func(e events.Event) {
			fmt.Printf("Generating with %s...\n", client.ModelName())
		})
		a.bus.Subscribe(events.GenerationFailed, func(e events.Event) {
			if kind, ok := e.Data.(generator.ErrorKind); ok {
				color.Red("Generation failed (%s)", kind)
			}
		})
		defer a.bus.Flush()

		orch := orchestrator.New(a.store, client, a.bus)
		prompt := strings.Join(args, " ")

		outcome, err := orch.Generate(context.Background(), prompt, mode)
		if err != nil {
			// Persist the restored project status; the transcript
			// itself is ephemeral and never written to the snapshot.
			_ = a.save()
			return err
		}
		if err := a.save(); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(outcome.Result.Explanation)
		fmt.Println()
		for _, change := range outcome.Changes {
			switch change.Kind {
			case orchestrator.ChangeAdded:
				color.Green("  + %s (%d lines)", change.Path, change.LinesAdded)
			case orchestrator.ChangeModified:
				color.Yellow("  ~ %s (+%d/-%d)", change.Path, change.LinesAdded, change.LinesRemoved)
			case orchestrator.ChangeRemoved:
				color.Red("  - %s", change.Path)
			}
		}
		if len(outcome.Result.Suggestions) > 0 {
			fmt.Println()
			fmt.Println("Next steps:")
			for _, s := range outcome.Result.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
		return nil
	},
}

func parseMode(raw string) (model.GenerationMode, error) {
	switch model.GenerationMode(raw) {
	case model.ModeGenerate, model.ModeDebug, model.ModeModify:
		return model.GenerationMode(raw), nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected generate, modify or debug)", raw)
	}
}

func init() {
	generateCmd.Flags().StringVarP(&generateMode, "mode", "m", string(model.ModeGenerate), "Generation mode: generate, modify or debug")
}
