package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

var (
	spellSearch string
	spellClass  string
)

var listSpellsCmd = &cobra.Command{
	Use:   "list-spells",
	Short: "Search the spell list",
	RunE:  runListSpells,
}

func init() {
	listSpellsCmd.Flags().StringVar(&spellSearch, "search", "", "substring of the spell name")
	listSpellsCmd.Flags().StringVar(&spellClass, "class", "", "only spells this class can learn")
}

type spellList struct {
	Spells     []*dnd5e.Spell `json:"spells"`
	Count      int            `json:"count"`
	ClassNames []string       `json:"class_names"`
}

func runListSpells(cmd *cobra.Command, _ []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	query := url.Values{}
	if spellSearch != "" {
		query.Set("search", spellSearch)
	}
	if spellClass != "" {
		query.Set("class", spellClass)
	}
	path := "/spells"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list spellList
	if err := newAPIClient().do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return fmt.Errorf("failed to list spells: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found %d spells\n\n", list.Count)
	for _, spell := range list.Spells {
		label := "cantrip"
		if spell.Level > 0 {
			label = fmt.Sprintf("level %d", spell.Level)
		}
		fmt.Fprintf(out, "  %-28s %-9s %s\n", spell.Name, label, spell.School)
	}
	return nil
}
