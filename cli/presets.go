package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/plannerkit/spec"
)

// presetsCommand lists the built-in presets.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range spec.Presets() {
				s := p.Spec
				if _, err := fmt.Fprintf(c.stdout, "%-24s %-8s %-8s %-6s %s\n", p.ID, s.Kind, s.Layout, s.Size, p.Label); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
