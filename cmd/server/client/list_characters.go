package client

import (
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
)

var spellcastersOnly bool

var listCharactersCmd = &cobra.Command{
	Use:   "list-characters",
	Short: "List the token user's characters, newest first",
	RunE:  runListCharacters,
}

func init() {
	listCharactersCmd.Flags().BoolVar(&spellcastersOnly, "spellcasters", false, "only spellcasting classes")
}

func runListCharacters(cmd *cobra.Command, _ []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	path := "/characters"
	if spellcastersOnly {
		path += "?spellcasters=true"
	}

	var characters []entities.Character
	if err := newAPIClient().do(ctx, http.MethodGet, path, nil, &characters); err != nil {
		return fmt.Errorf("failed to list characters: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCLASS\tLEVEL\tHP")
	for _, c := range characters {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d/%d\n", c.ID, c.Name, c.ClassName, c.Level, c.HPCurrent, c.HPMax)
	}
	return tw.Flush()
}
