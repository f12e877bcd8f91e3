package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/olekukonko/tablewriter"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/config"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/logger"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/normalize"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider/factory"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/view"
)

// options 命令行参数
type options struct {
	conf     string
	provider string
	apiKey   string
	file     string
	sortKey  string
	desc     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, []string, error) {
	var o options
	fs := flag.NewFlagSet("brandspark", flag.ContinueOnError)
	fs.StringVar(&o.conf, "conf", "", "config path, eg: -conf configs/brandspark.yaml")
	fs.StringVar(&o.provider, "provider", "", "AI provider: gemini or openai")
	fs.StringVar(&o.apiKey, "key", "", "API key for the selected provider")
	fs.StringVar(&o.file, "file", "", "read domains from a .csv or .txt file")
	fs.StringVar(&o.sortKey, "sort", string(view.KeyAtomScore), "sort column: domainName, brandArchetype, atomScore, valuation")
	fs.BoolVar(&o.desc, "desc", true, "sort descending")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &o, fs.Args(), nil
}

func run(args []string, out io.Writer) error {
	o, rest, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if o.conf != "" {
		if cfg, err = config.LoadConfig(o.conf); err != nil {
			return fmt.Errorf("无法加载配置文件: %w", err)
		}
	}
	if o.provider != "" {
		cfg.Provider = o.provider
	}
	if o.apiKey != "" {
		cfg.APIKey = o.apiKey
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("无法初始化日志: %w", err)
	}

	name, err := provider.ParseName(cfg.Provider)
	if err != nil {
		return err
	}
	sortKey, ok := view.ParseSortKey(o.sortKey)
	if !ok {
		return fmt.Errorf("unknown sort column: %q", o.sortKey)
	}

	domains := normalize.Domains(strings.Join(rest, " "))
	if o.file != "" {
		f, err := os.Open(o.file)
		if err != nil {
			logger.Log.Warnf("无法打开文件 [%s]: %v", o.file, err)
			return model.ErrorFileRead("Error reading file.").WithCause(err)
		}
		defer f.Close()
		if domains, err = normalize.FromReader(o.file, f); err != nil {
			return err
		}
	}

	if domains == "" {
		return model.ErrorValidation("Please enter at least one domain name.")
	}
	if cfg.APIKey == "" {
		return model.ErrorValidation("Please enter an API key for %s.", name.DisplayName())
	}

	report, err := factory.NewDispatcher(cfg).Analyze(context.Background(), name, domains, cfg.APIKey)
	if err != nil {
		return err
	}

	direction := view.Ascending
	if o.desc {
		direction = view.Descending
	}
	render(out, report, view.SortConfig{Key: sortKey, Direction: direction})
	return nil
}

// render 输出执行简报与完整分析表
func render(out io.Writer, report *model.Report, sc view.SortConfig) {
	fmt.Fprintln(out, "Executive Briefing: Top 5 Picks")
	for _, p := range view.Briefing(report.ExecutiveBriefing) {
		fmt.Fprintf(out, "  #%d %s\n     %s\n", p.Rank, p.DomainName, p.Justification)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Comprehensive Analysis")

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Domain Name", "Archetype", "Atom Score", "Strengths", "Weaknesses", "Use Cases", "Valuation (W/R)"})
	table.SetAutoWrapText(true)
	table.SetRowLine(true)
	for _, row := range view.SortTable(report.AnalysisTable, sc) {
		table.Append([]string{
			row.DomainName,
			row.BrandArchetype,
			fmt.Sprintf("%d/10", row.AtomScore),
			row.KeyStrengths,
			row.WeaknessesOrRisks,
			row.IdealUseCases,
			row.Valuation,
		})
	}
	table.Render()
}

// errorMessage 优先使用 kratos 错误中面向用户的 message
func errorMessage(err error) string {
	var ke *kerrors.Error
	if errors.As(err, &ke) && ke.Message != "" {
		return ke.Message
	}
	return err.Error()
}
