// Package cli implements the plannerkit command-line interface.
//
// Commands:
//   - generate: 导出 PDF、SVG 压缩包或设计工具压缩包
//   - preview: 输出预览 SVG 或 PNG 缩略图
//   - presets: 列出内置模板
//   - layout: 输出排版结果的调试 JSON
//
// 全局参数 --config 指定 TOML 配置，--verbose 打开调试日志。
// logger 通过 context 传递给各个命令。
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/plannerkit/config"
	"github.com/ByLCY/plannerkit/engine"
	"github.com/ByLCY/plannerkit/errs"
)

var version = "dev"

// SetVersion sets the version reported by --version; main injects it via ldflags.
func SetVersion(v string) { version = v }

// CLI holds state shared by all commands. It is filled in by the root command's
// PersistentPreRunE once flags are parsed.
type CLI struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	cfg    config.Config
	engine *engine.Engine
	logger *log.Logger
}

// Execute runs the plannerkit CLI.
func Execute(ctx context.Context) error {
	c := &CLI{stdout: os.Stdout, stderr: os.Stderr}
	return c.Execute(ctx, os.Args[1:])
}

// Execute runs the root command with args and reports a failure on stderr.
// Errors carrying an errs code are shown as the generic user message; the
// full chain goes to the debug log.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		c.report(err)
	}
	return err
}

func (c *CLI) report(err error) {
	logger := c.logger
	if logger == nil {
		logger = newLogger(c.stderr, logLevel(c.verbose, ""))
	}
	if errs.GetCode(err) == "" {
		// 没有错误码的错误（参数、文件）原样输出
		fmt.Fprintln(c.stderr, "Error:", err)
		return
	}
	logger.Debug("命令失败", "code", errs.GetCode(err), "err", err)
	fmt.Fprintln(c.stderr, "Error:", errs.UserMessage(err))
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "plannerkit",
		Short:         "plannerkit renders planner and journal templates",
		Long:          `plannerkit turns a template spec (JSON, .plan DSL or a built-in preset) into a printable PDF or a layered SVG archive for design tools.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			logger := newLogger(c.stderr, logLevel(c.verbose, cfg.Log.Level))
			logger.Debug("配置已加载", "path", c.configPath, "workers", cfg.Render.Workers)

			c.cfg = cfg
			c.logger = logger
			c.engine = engine.New(cfg, logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultFile, "TOML 配置文件")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "输出调试日志")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.layoutCommand())

	return root
}

// writeOutput 将数据写入 path；path 为 "-" 时写到标准输出。
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
