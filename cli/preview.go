package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		in     specInput
		output string
		png    string
		scale  float64
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the low-fidelity preview",
		Long: `Render the 320x420 low-fidelity preview as SVG.

With --png the same placeholder scene is also rasterized to a PNG thumbnail (text is omitted).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), &in, output, png, scale)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "-", "SVG 输出路径（- 表示标准输出）")
	cmd.Flags().StringVar(&png, "png", "", "PNG 缩略图输出路径")
	cmd.Flags().Float64Var(&scale, "scale", 1, "缩略图像素/pt")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, in *specInput, output, png string, scale float64) error {
	logger := loggerFromContext(ctx)

	s, err := in.load()
	if err != nil {
		return err
	}
	if err := c.writeOutput(output, []byte(c.engine.Preview(s))); err != nil {
		return err
	}
	if png == "" {
		return nil
	}
	data, err := c.engine.Thumbnail(s, scale)
	if err != nil {
		return err
	}
	if err := c.writeOutput(png, data); err != nil {
		return err
	}
	logger.Info("已生成缩略图", "out", png, "bytes", len(data))
	return nil
}
