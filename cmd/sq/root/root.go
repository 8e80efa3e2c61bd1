package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyquest/internal/ui"
)

const Version = "0.1.0"

var examsPath string

var rootCmd = &cobra.Command{
	Use:           "sq",
	Short:         "StudyQuest — local-first gamified course companion",
	Long:          "StudyQuest tracks course exercises and rewards them with coins, combos, stat XP, confidant ranks, streaks, fusions and timed exams.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&examsPath, "exams", "", "Path to a YAML exam catalog (default: built-in)")

	rootCmd.AddCommand(
		newCompleteCmd(),
		newStatusCmd(),
		newTrophiesCmd(),
		newExamCmd(),
		newCardCmd(),
		newShopCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
