package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

var getClassCmd = &cobra.Command{
	Use:   "get-class NAME",
	Short: "Show a class and its level progression",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetClass,
}

type classDetail struct {
	Class       *dnd5e.Class            `json:"class"`
	Progression []engine.ProgressionRow `json:"progression"`
}

func runGetClass(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	var detail classDetail
	path := "/classes/" + url.PathEscape(args[0])
	if err := newAPIClient().do(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return fmt.Errorf("failed to get class: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", detail.Class.Name, detail.Class.HitDie)
	if detail.Class.Spellcasting != nil {
		fmt.Fprintf(out, "Spellcasting ability: %s\n", detail.Class.Spellcasting.Ability)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tPROF\tHP\tSLOTS")
	for _, row := range detail.Progression {
		var slots []string
		for i, count := range row.Slots {
			if count > 0 {
				slots = append(slots, fmt.Sprintf("%d:%d", i+1, count))
			}
		}
		fmt.Fprintf(tw, "%d\t+%d\t%d\t%s\n", row.Level, row.ProficiencyBonus, row.HPMax, strings.Join(slots, " "))
	}
	return tw.Flush()
}
