package client

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type classSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	HitDie           string   `json:"hit_die"`
	Spellcaster      bool     `json:"spellcaster"`
	PrimaryAbilities []string `json:"primary_abilities"`
	Subclasses       []string `json:"subclasses"`
}

var listClassesCmd = &cobra.Command{
	Use:   "list-classes",
	Short: "List the classes in the rules catalog",
	RunE:  runListClasses,
}

func runListClasses(cmd *cobra.Command, _ []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	var classes []classSummary
	if err := newAPIClient().do(ctx, http.MethodGet, "/classes", nil, &classes); err != nil {
		return fmt.Errorf("failed to list classes: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tHIT DIE\tCASTER\tPRIMARY\tSUBCLASSES")
	for _, class := range classes {
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t%s\n",
			class.Name,
			class.HitDie,
			class.Spellcaster,
			strings.Join(class.PrimaryAbilities, ", "),
			strings.Join(class.Subclasses, ", "))
	}
	return tw.Flush()
}
