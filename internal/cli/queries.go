package cli

import (
	"fmt"
	"strings"

	"github.com/kvolkava/roomcensus/internal/catalog"
	"github.com/spf13/cobra"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the query catalog",
	Long: `Queries prints the names of all catalog queries and the columns each
one projects. These names are accepted by 'roomcensus run --query'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Default()
		if err != nil {
			return err
		}
		for _, q := range cat.Queries() {
			fmt.Printf("%-30s %s\n", q.Name, strings.Join(q.Projection, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queriesCmd)
}
