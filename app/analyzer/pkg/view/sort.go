package view

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
)

// SortKey 可排序的列
type SortKey string

const (
	KeyNone           SortKey = ""
	KeyDomainName     SortKey = "domainName"
	KeyBrandArchetype SortKey = "brandArchetype"
	KeyAtomScore      SortKey = "atomScore"
	KeyValuation      SortKey = "valuation"
)

// SortKeys 表头中可点击排序的列，按展示顺序
var SortKeys = []SortKey{KeyDomainName, KeyBrandArchetype, KeyAtomScore, KeyValuation}

// ParseSortKey 解析列名，未知列返回 false
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(s)
	if slices.Contains(SortKeys, k) {
		return k, true
	}
	return KeyNone, false
}

// Direction 排序方向
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// SortConfig 表格排序状态
type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort 初始按 Atom Score 降序
func DefaultSort() SortConfig {
	return SortConfig{Key: KeyAtomScore, Direction: Descending}
}

// RequestSort 点击某列后的新状态：换列从升序开始，同列在升降序之间切换
func (c SortConfig) RequestSort(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Ascending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

// SortTable 返回排序后的副本，不修改传入的切片。
// 结果只由 (rows, c) 决定；相等的行保持原有相对顺序。
func SortTable(rows []model.DomainAnalysis, c SortConfig) []model.DomainAnalysis {
	sorted := slices.Clone(rows)
	if c.Key == KeyNone {
		return sorted
	}

	// collator 不能并发使用，每次排序单独创建
	col := collate.New(language.Und, collate.Numeric, collate.Loose)
	slices.SortStableFunc(sorted, func(a, b model.DomainAnalysis) int {
		var n int
		switch c.Key {
		case KeyValuation:
			n = cmp.Compare(model.ParseRetailValuation(a.Valuation), model.ParseRetailValuation(b.Valuation))
		case KeyAtomScore:
			n = a.AtomScore - b.AtomScore
		case KeyDomainName:
			n = col.CompareString(a.DomainName, b.DomainName)
		case KeyBrandArchetype:
			n = col.CompareString(a.BrandArchetype, b.BrandArchetype)
		}
		if c.Direction == Descending {
			return -n
		}
		return n
	})
	return sorted
}

// Briefing 执行简报始终按 rank 升序展示，与表格排序状态无关
func Briefing(picks []model.ExecutivePick) []model.ExecutivePick {
	sorted := slices.Clone(picks)
	slices.SortStableFunc(sorted, func(a, b model.ExecutivePick) int {
		return a.Rank - b.Rank
	})
	return sorted
}
