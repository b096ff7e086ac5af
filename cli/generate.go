package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/plannerkit/engine"
)

// generateCommand creates the generate command for exporting documents.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		in     specInput
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Export a template as PDF or SVG archive",
		Long: `Export a template as a PDF, a plain SVG archive or a design-tool archive.

Formats:
  pdf    single PDF, one page per spec page (planner.pdf)
  svg    ZIP of page-N.svg files (planner-svg.zip)
  canva  the same ZIP plus manifest.json, palette.json, fonts.txt and an import guide (planner-canva.zip)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), &in, engine.Format(strings.ToLower(format)), output)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(engine.FormatPDF), "导出格式：pdf、svg、canva")
	cmd.Flags().StringVarP(&output, "out", "o", "", "输出路径（默认使用产物文件名，- 表示标准输出）")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, in *specInput, format engine.Format, output string) error {
	logger := loggerFromContext(ctx)

	s, err := in.load()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	art, err := c.engine.Generate(ctx, s, format)
	if err != nil {
		return fmt.Errorf("生成 %s 失败: %w", format, err)
	}
	if output == "" {
		output = art.Filename
	}
	if err := c.writeOutput(output, art.Data); err != nil {
		return err
	}
	prog.done("已生成", "format", format, "pages", s.Pages.Count, "out", output, "bytes", len(art.Data))
	return nil
}
