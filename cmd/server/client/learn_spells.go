package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
)

var (
	learnCharacterID string
	learnSpells      []string
)

var learnSpellsCmd = &cobra.Command{
	Use:   "learn-spells",
	Short: "Add spells to a character's grimoire",
	RunE:  runLearnSpells,
}

func init() {
	learnSpellsCmd.Flags().StringVar(&learnCharacterID, "id", "", "Character ID (required)")
	learnSpellsCmd.Flags().StringArrayVar(&learnSpells, "spell", nil, "Spell name, repeatable (required)")
	_ = learnSpellsCmd.MarkFlagRequired("id")    // nolint:errcheck // safe to ignore in init
	_ = learnSpellsCmd.MarkFlagRequired("spell") // nolint:errcheck // safe to ignore in init
}

type learnSpellsResult struct {
	Character *entities.Character `json:"character"`
	Added     int                 `json:"added"`
	Notice    string              `json:"notice"`
}

func runLearnSpells(cmd *cobra.Command, _ []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	var result learnSpellsResult
	path := "/characters/" + url.PathEscape(learnCharacterID) + "/spells"
	body := map[string][]string{"spells": learnSpells}
	if err := newAPIClient().do(ctx, http.MethodPost, path, body, &result); err != nil {
		return fmt.Errorf("failed to learn spells: %w", err)
	}

	out := cmd.OutOrStdout()
	if result.Notice != "" {
		fmt.Fprintln(out, result.Notice)
	} else {
		fmt.Fprintf(out, "Learned %d spells\n", result.Added)
	}
	fmt.Fprintf(out, "Spells known: %v\n", result.Character.KnownSpellNames())
	return nil
}
