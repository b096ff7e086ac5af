package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/plannerkit/layout"
)

// layoutCommand dumps the composed vector pages as JSON for inspection.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in     specInput
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Dump composed pages as debug JSON",
		Long: `Compose the template and write every page (layers and elements, in points with a
top-left origin) as indented JSON. Useful for checking coordinates without opening a PDF.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), &in, output)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "-", "输出路径（- 表示标准输出）")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, in *specInput, output string) error {
	logger := loggerFromContext(ctx)

	s, err := in.load()
	if err != nil {
		return err
	}
	res, err := c.engine.Layout(ctx, s)
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}

	if output != "-" {
		if err := layout.WriteDebugJSON(res, output); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
		logger.Info("已输出调试 JSON", "out", output, "pages", len(res.Pages))
		return nil
	}
	var buf bytes.Buffer
	if err := layout.EncodeDebugJSON(res, &buf); err != nil {
		return err
	}
	return c.writeOutput(output, buf.Bytes())
}
