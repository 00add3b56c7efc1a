package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/skill-matcher/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the skill catalog used for extraction",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := getConfig()
		if err != nil {
			return err
		}

		printCatalog(cmd.OutOrStdout(), config.skillCatalog())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func printCatalog(w io.Writer, c *catalog.Catalog) {
	for _, name := range c.CategoryNames() {
		fmt.Fprintf(w, "%s: %s\n", name, strings.Join(c.Category(name), ", "))
	}
	fmt.Fprintf(w, "total: %d skills\n", c.Len())
}
