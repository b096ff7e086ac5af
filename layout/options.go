package layout

// 默认的页眉/页脚模板，占位符由 binding.Interpolate 填充。
const (
	DefaultHeaderTemplate = "${kind} · ${layout}"
	DefaultFooterTemplate = "Page ${page}"
)

// BuildOptions 配置排版阶段。零值可用：单线程、默认模板。
type BuildOptions struct {
	// Workers 是并行排版的页数上限，<=0 时按 1 处理。
	Workers int
	// HeaderTemplate 可引用 ${kind}、${layout}；为空时使用 DefaultHeaderTemplate。
	HeaderTemplate string
	// FooterTemplate 可引用 ${page}、${pages}；为空时使用 DefaultFooterTemplate。
	FooterTemplate string
}

func (o BuildOptions) workers() int {
	if o.Workers <= 0 {
		return 1
	}
	return o.Workers
}

func (o BuildOptions) headerTemplate() string {
	if o.HeaderTemplate == "" {
		return DefaultHeaderTemplate
	}
	return o.HeaderTemplate
}

func (o BuildOptions) footerTemplate() string {
	if o.FooterTemplate == "" {
		return DefaultFooterTemplate
	}
	return o.FooterTemplate
}
