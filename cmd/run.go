package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/matching"
	"github.com/spigell/skill-matcher/internal/posting"
)

const (
	PromptSave                = "Save ranking and exit"
	PromptSummary             = "Show top postings"
	PromptReportByCompany     = "Report by company"
	PromptPostingsToFile      = "Dump postings to file"
	PromptAppendToExcludeFile = "Append all postings to exclude file"
	PromptExit                = "Exit without saving"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract skills from raw postings, score them and rank them in one go",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, runFlags)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("interactive", "i", false, "ask what to do with the ranking before saving it")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with postings to exclude. Default is unset.")
	runCmd.Flags().IntP("top", "n", 0, "number of postings in the summary")
}

var runFlags = map[string]string{
	"exclude-file": "exclude-file",
	"top":          key("score", "top"),
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	l, config := setup(cmd.Name())

	postings, err := loadAndExtract(cmd.Context(), l, config)
	if err != nil {
		l.Fatal("extracting skills", zap.Error(err))
	}

	if postings.Len() == 0 {
		l.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	if err := saveStructured(l, config.Extract.Output, postings); err != nil {
		l.Fatal("saving structured postings", zap.Error(err))
	}

	ranking := rank(l, config, postings)

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		if err := handleAction(PromptSave, cmd.OutOrStdout(), l, config, &ranking); err != nil && !errors.Is(err, errExit) {
			l.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		prompt := promptui.Select{
			Label: "Proceed?",
			Items: promptItems(config),
		}

		_, action, err := prompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		l.Info("current list of postings", zap.Int("count", ranking.Len()))

		if err := handleAction(action, cmd.OutOrStdout(), l, config, &ranking); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}
}

func promptItems(config *Config) []string {
	items := []string{PromptSave, PromptSummary, PromptReportByCompany, PromptPostingsToFile}
	if config.ExcludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func handleAction(action string, out io.Writer, l *zap.Logger, config *Config, ranking *matching.Ranking) error {
	switch action {
	case PromptSave:
		if err := saveRanking(l, config.Score.Output, *ranking); err != nil {
			return fmt.Errorf("save ranking: %w", err)
		}
		printSummary(out, *ranking, config.Score.Top)
		return errExit
	case PromptSummary:
		printSummary(out, *ranking, config.Score.Top)
		return nil
	case PromptReportByCompany:
		postings := ranking.Postings()
		pretty, err := json.MarshalIndent(postings.ReportByCompany(), "", "  ")
		if err != nil {
			return fmt.Errorf("report by company: %w", err)
		}
		l.Info(string(pretty), zap.Int("postings count", postings.Len()))
		return nil
	case PromptPostingsToFile:
		filename, err := ranking.Postings().DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		l.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(l, config, ranking)
	case PromptExit:
		l.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// appendToExcludeFile records every ranked posting in the exclude file and
// re-ranks the rest, which is empty unless some postings have no url.
func appendToExcludeFile(l *zap.Logger, config *Config, ranking *matching.Ranking) error {
	excluded, err := posting.GetExcludedPostingsFromFile(config.ExcludeFile)
	if err != nil {
		return err
	}

	postings := ranking.Postings()
	excluded.Append(postings.ToExcluded())

	if err := excluded.ToFile(config.ExcludeFile); err != nil {
		return err
	}

	l.Info("appended to exclude file",
		zap.String("filename", config.ExcludeFile),
		zap.Strings("urls", postings.URLs()),
	)

	postings.Exclude(posting.URLField, excluded.URLs())
	*ranking = matching.Rank(postings, config.Profile)
	return nil
}
