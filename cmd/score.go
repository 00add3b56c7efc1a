package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/matching"
	"github.com/spigell/skill-matcher/internal/posting"
	"github.com/spigell/skill-matcher/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score structured postings against the profile and rank them",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, scoreFlags)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		l, config := setup(cmd.Name())

		table, err := store.ReadFile(config.Score.Input)
		if err != nil {
			l.Fatal("reading structured postings", zap.Error(err))
		}
		if err := table.Require(store.ColumnRequired, store.ColumnPreferred); err != nil {
			l.Fatal("reading structured postings", zap.Error(err), zap.String("hint", "run the extract command first"))
		}

		l.Info("getting postings", zap.Int("count", table.Postings.Len()), zap.String("path", config.Score.Input))

		ranking := rank(l, config, table.Postings)
		if err := saveRanking(l, config.Score.Output, ranking); err != nil {
			l.Fatal("saving ranking", zap.Error(err))
		}
		printSummary(cmd.OutOrStdout(), ranking, config.Score.Top)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("input", "i", "", "structured postings csv")
	scoreCmd.Flags().StringP("output", "o", "", "ranked postings csv")
	scoreCmd.Flags().IntP("top", "n", 0, "number of postings in the summary")
}

var scoreFlags = map[string]string{
	"input":  key("score", "input"),
	"output": key("score", "output"),
	"top":    key("score", "top"),
}

func rank(l *zap.Logger, config *Config, postings *posting.Postings) matching.Ranking {
	ranking := matching.Rank(postings, config.Profile)
	l.Info("ranked postings",
		zap.Int("count", ranking.Len()),
		zap.Int("profile_skills", len(config.Profile.Skills)),
		zap.Strings("preferred_locations", config.Profile.PreferredLocations),
	)
	return ranking
}

func saveRanking(l *zap.Logger, path string, ranking matching.Ranking) error {
	err := store.WriteFile(path, func(w io.Writer) error {
		return store.WriteRanking(w, ranking)
	})
	if err != nil {
		return err
	}

	l.Info("saved ranking", zap.String("path", path), zap.Int("count", ranking.Len()))
	return nil
}

func printSummary(w io.Writer, ranking matching.Ranking, top int) {
	for _, line := range ranking.Summary(top) {
		fmt.Fprintln(w, line)
	}
}
