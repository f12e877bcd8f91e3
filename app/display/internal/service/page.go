package service

import (
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/view"
	"github.com/iWorld-y/brand_spark/app/display/internal/domain"
)

type providerOption struct {
	Name    string
	Title   string
	Label   string
	Checked bool
}

type column struct {
	Key       string
	Label     string
	Sortable  bool
	Indicator string
}

type pageData struct {
	Providers []providerOption
	KeyLabel  string
	Provider  string
	Domains   string
	APIKey    string
	Loading   bool
	Error     string
	HasReport bool
	Briefing  []model.ExecutivePick
	Columns   []column
	Rows      []model.DomainAnalysis
}

var columns = []struct {
	key   view.SortKey
	label string
}{
	{view.KeyDomainName, "Domain Name"},
	{view.KeyBrandArchetype, "Archetype"},
	{view.KeyAtomScore, "Atom Score"},
	{view.KeyNone, "Strengths"},
	{view.KeyNone, "Weaknesses"},
	{view.KeyNone, "Use Cases"},
	{view.KeyValuation, "Valuation (W/R)"},
}

func keyLabel(n provider.Name) string {
	return n.DisplayName() + " API Key"
}

func newPageData(snap domain.Snapshot) pageData {
	d := pageData{
		KeyLabel: keyLabel(snap.Input.Provider),
		Provider: snap.Input.Provider.DisplayName(),
		Domains:  snap.Input.Domains,
		APIKey:   snap.Input.APIKey,
		Loading:  snap.State.Phase() == domain.PhaseLoading,
	}
	for _, n := range provider.Names {
		d.Providers = append(d.Providers, providerOption{
			Name:    string(n),
			Title:   n.Title(),
			Label:   keyLabel(n),
			Checked: n == snap.Input.Provider,
		})
	}
	if msg, ok := snap.State.Message(); ok {
		d.Error = msg
	}
	if _, ok := snap.State.Report(); ok {
		d.HasReport = true
		d.Briefing = snap.Briefing
		d.Rows = snap.Table
		for _, c := range columns {
			col := column{Key: string(c.key), Label: c.label, Sortable: c.key != view.KeyNone}
			if col.Sortable && snap.Sort.Key == c.key {
				col.Indicator = "▼"
				if snap.Sort.Direction == view.Ascending {
					col.Indicator = "▲"
				}
			}
			d.Columns = append(d.Columns, col)
		}
	}
	return d
}
