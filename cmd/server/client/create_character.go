package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
)

var (
	characterName  string
	characterClass string
	characterLevel int
)

var createCharacterCmd = &cobra.Command{
	Use:   "create-character",
	Short: "Create a character for the token's user",
	RunE:  runCreateCharacter,
}

func init() {
	createCharacterCmd.Flags().StringVar(&characterName, "name", "", "Character name (required)")
	createCharacterCmd.Flags().StringVar(&characterClass, "class", "", "Class name")
	createCharacterCmd.Flags().IntVar(&characterLevel, "level", 1, "Character level")
	_ = createCharacterCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init
}

type createCharacterRequest struct {
	Name      string `json:"name"`
	ClassName string `json:"class_name,omitempty"`
	Level     int    `json:"level"`
}

func runCreateCharacter(cmd *cobra.Command, _ []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	var created entities.Character
	err := newAPIClient().do(ctx, http.MethodPost, "/characters", createCharacterRequest{
		Name:      characterName,
		ClassName: characterClass,
		Level:     characterLevel,
	}, &created)
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	printCharacter(cmd, &created)
	fmt.Fprintf(cmd.OutOrStdout(), "\nNext: grimoire-api client learn-spells --id %s --spell \"Cure Wounds\"\n", created.ID)
	return nil
}

func printCharacter(cmd *cobra.Command, c *entities.Character) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:    %s\n", c.ID)
	fmt.Fprintf(out, "Name:  %s\n", c.Name)
	if c.ClassName != "" {
		fmt.Fprintf(out, "Class: %s %d\n", c.ClassName, c.Level)
	} else {
		fmt.Fprintf(out, "Level: %d\n", c.Level)
	}
	fmt.Fprintf(out, "HP:    %d/%d\n", c.HPCurrent, c.HPMax)
	for _, level := range c.SpellSlots.Levels() {
		pair := c.SpellSlots[level]
		fmt.Fprintf(out, "Slots L%s: %d/%d\n", level, pair.Current, pair.Max)
	}
	if len(c.SpellsKnown) > 0 {
		fmt.Fprintf(out, "Spells: %v\n", c.KnownSpellNames())
	}
}
