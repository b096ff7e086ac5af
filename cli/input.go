package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/plannerkit/dsl"
	"github.com/ByLCY/plannerkit/spec"
)

// specInput 是各命令共用的输入参数。
type specInput struct {
	path   string
	preset string
	pages  int
}

func (in *specInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.path, "spec", "s", "", "模板文件（.json 或 .plan）")
	cmd.Flags().StringVarP(&in.preset, "preset", "p", "", "内置模板 ID（见 presets 命令）")
	cmd.Flags().IntVar(&in.pages, "pages", 0, "覆盖页数")
}

// load 读取并校验 Spec。--preset 与 --spec 二选一；都未指定时使用默认模板。
func (in *specInput) load() (spec.Spec, error) {
	var (
		s   spec.Spec
		err error
	)
	switch {
	case in.path != "" && in.preset != "":
		return spec.Spec{}, fmt.Errorf("--spec 与 --preset 不能同时使用")
	case in.preset != "":
		p, ok := spec.LookupPreset(in.preset)
		if !ok {
			return spec.Spec{}, fmt.Errorf("内置模板 %q 不存在", in.preset)
		}
		s = p.Spec
	case in.path != "":
		s, err = readSpecFile(in.path)
		if err != nil {
			return spec.Spec{}, err
		}
	default:
		s = spec.Default()
	}

	if in.pages > 0 {
		s.Pages.Count = in.pages
	}
	if err := spec.Validate(s); err != nil {
		return spec.Spec{}, err
	}
	return s, nil
}

func readSpecFile(path string) (spec.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return spec.Spec{}, fmt.Errorf("无法打开模板文件 %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".plan":
		return dsl.Load(f)
	default:
		return spec.Decode(f)
	}
}
