package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/config"
	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

var (
	progressionClass string
	progressionLevel int
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the rules catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report what was found",
	RunE:  runCatalogValidate,
}

var catalogProgressionCmd = &cobra.Command{
	Use:   "progression",
	Short: "Print the level progression table for a class",
	RunE:  runCatalogProgression,
}

func init() {
	catalogProgressionCmd.Flags().StringVar(&progressionClass, "class", "", "class name (exact match)")
	catalogProgressionCmd.Flags().IntVar(&progressionLevel, "level", 0, "print a single level")
	_ = catalogProgressionCmd.MarkFlagRequired("class")

	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogProgressionCmd)
}

// catalogConfig loads only the catalog settings; auth and storage are not
// needed to inspect the rules.
func catalogConfig() (*config.CatalogConfig, error) {
	cfg, err := config.Load(&config.LoadInput{Path: configPath, SkipValidation: true})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))
	return &cfg.Catalog, nil
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := catalogConfig()
	if err != nil {
		return err
	}

	store, err := loadCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	casters := 0
	for _, class := range store.Classes() {
		if class.IsSpellcaster() {
			casters++
		}
	}
	fmt.Fprintf(out, "classes: %d (%d spellcasters)\n", len(store.Classes()), casters)
	fmt.Fprintf(out, "spells:  %d (source: %s)\n", len(store.AllSpells()), store.SpellsOrigin())

	problems := store.Problems()
	if len(problems) == 0 {
		fmt.Fprintln(out, "no problems found")
		return nil
	}
	fmt.Fprintf(out, "problems: %d\n", len(problems))
	for _, problem := range problems {
		fmt.Fprintf(out, "  - %s\n", problem)
	}
	return nil
}

func runCatalogProgression(cmd *cobra.Command, _ []string) error {
	if progressionLevel != 0 && (progressionLevel < 1 || progressionLevel > dnd5e.MaxLevel) {
		return errors.InvalidArgumentf("level must be between 1 and %d", dnd5e.MaxLevel)
	}

	cfg, err := catalogConfig()
	if err != nil {
		return err
	}
	store, err := loadCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	rules, err := engine.New(&engine.Config{Catalog: store})
	if err != nil {
		return err
	}

	table, err := rules.ProgressionTable(&engine.ProgressionTableInput{ClassName: progressionClass})
	if err != nil {
		return err
	}

	rows := table.Rows
	if progressionLevel != 0 {
		rows = rows[progressionLevel-1 : progressionLevel]
	}
	return writeProgression(cmd.OutOrStdout(), table.Class, rows)
}

func writeProgression(out io.Writer, class *dnd5e.Class, rows []engine.ProgressionRow) error {
	fmt.Fprintf(out, "%s (%s)\n", class.Name, class.HitDie)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tPROF\tHP\tCANTRIPS\tKNOWN\tSLOTS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t+%d\t%d\t%d\t%d\t%s\n",
			row.Level, row.ProficiencyBonus, row.HPMax, row.CantripsKnown, row.SpellsKnown, formatSlots(row.Slots))
	}
	return tw.Flush()
}

// formatSlots prints the non-zero slot counts as "1:4 2:3".
func formatSlots(slots [9]int) string {
	parts := make([]string, 0, len(slots))
	for i, count := range slots {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d:%d", i+1, count))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
