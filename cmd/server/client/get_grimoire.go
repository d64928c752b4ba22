package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var grimoireCharacterID string

var getGrimoireCmd = &cobra.Command{
	Use:   "get-grimoire",
	Short: "Show a character's spellbook and slots",
	RunE:  runGetGrimoire,
}

func init() {
	getGrimoireCmd.Flags().StringVar(&grimoireCharacterID, "id", "", "Character ID (required)")
	_ = getGrimoireCmd.MarkFlagRequired("id") // nolint:errcheck // safe to ignore in init
}

type grimoireView struct {
	ClassName        string `json:"class_name"`
	Level            int    `json:"level"`
	ProficiencyBonus int    `json:"proficiency_bonus"`
	SpellsByLevel    []struct {
		Level  int `json:"level"`
		Spells []struct {
			Name   string `json:"name"`
			School string `json:"school"`
		} `json:"spells"`
	} `json:"spells_by_level"`
	Unresolved []string `json:"unresolved"`
	Slots      []struct {
		Level   string `json:"level"`
		Current int    `json:"current"`
		Max     int    `json:"max"`
	} `json:"slots"`
	TotalCurrent int `json:"total_current"`
	TotalMax     int `json:"total_max"`
}

func runGetGrimoire(cmd *cobra.Command, _ []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	var view grimoireView
	path := "/characters/" + url.PathEscape(grimoireCharacterID) + "/grimoire"
	if err := newAPIClient().do(ctx, http.MethodGet, path, nil, &view); err != nil {
		return fmt.Errorf("failed to get grimoire: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d (proficiency +%d)\n\n", view.ClassName, view.Level, view.ProficiencyBonus)
	for _, group := range view.SpellsByLevel {
		if group.Level == 0 {
			fmt.Fprintln(out, "Cantrips")
		} else {
			fmt.Fprintf(out, "Level %d\n", group.Level)
		}
		for _, spell := range group.Spells {
			fmt.Fprintf(out, "  %s (%s)\n", spell.Name, spell.School)
		}
	}
	if len(view.Unresolved) > 0 {
		fmt.Fprintf(out, "Unresolved: %v\n", view.Unresolved)
	}

	fmt.Fprintf(out, "\nSlots %d/%d\n", view.TotalCurrent, view.TotalMax)
	for _, slot := range view.Slots {
		fmt.Fprintf(out, "  L%s: %d/%d\n", slot.Level, slot.Current, slot.Max)
	}
	return nil
}
