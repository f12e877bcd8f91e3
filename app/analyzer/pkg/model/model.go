package model

import (
	"fmt"
	"regexp"
	"strings"
)

// DomainAnalysis 单个域名的分析结果（对应分析表中的一行）
type DomainAnalysis struct {
	DomainName         string `json:"domainName"`
	BrandArchetype     string `json:"brandArchetype"`
	AtomScore          int    `json:"atomScore"` // 1-10，高端市场的收录概率
	LinguisticAnalysis string `json:"linguisticAnalysis"`
	KeyStrengths       string `json:"keyStrengths"`
	WeaknessesOrRisks  string `json:"weaknessesOrRisks"`
	IdealUseCases      string `json:"idealUseCases"`
	Valuation          string `json:"valuation"` // 批发价 / 零售价，例如 "$1,500 / $8,500"
}

// ExecutivePick 执行简报中的一个推荐项
type ExecutivePick struct {
	Rank          int    `json:"rank"`
	DomainName    string `json:"domainName"`
	Justification string `json:"justification"`
}

// Report 一次分析返回的完整报告
type Report struct {
	AnalysisTable     []DomainAnalysis `json:"analysisTable"`
	ExecutiveBriefing []ExecutivePick  `json:"executiveBriefing"`
}

const (
	MinAtomScore = 1
	MaxAtomScore = 10
)

var valuationPattern = regexp.MustCompile(`^\s*\S*\d[\d,.]*\S*\s*/\s*\S*\d[\d,.]*\S*\s*$`)

// Validate 检查行级与推荐项的不变量，返回所有违规描述。
// 这些问题不影响报告的使用，由调用方决定如何记录。
func (r *Report) Validate() []string {
	var issues []string
	for i, row := range r.AnalysisTable {
		if strings.TrimSpace(row.DomainName) == "" {
			issues = append(issues, fmt.Sprintf("analysisTable[%d]: empty domainName", i))
		}
		if row.AtomScore < MinAtomScore || row.AtomScore > MaxAtomScore {
			issues = append(issues, fmt.Sprintf("analysisTable[%d] %s: atomScore %d out of range %d-%d",
				i, row.DomainName, row.AtomScore, MinAtomScore, MaxAtomScore))
		}
		if !valuationPattern.MatchString(row.Valuation) {
			issues = append(issues, fmt.Sprintf("analysisTable[%d] %s: valuation %q is not \"W / R\"",
				i, row.DomainName, row.Valuation))
		}
	}

	seen := make(map[int]bool, len(r.ExecutiveBriefing))
	for i, pick := range r.ExecutiveBriefing {
		if seen[pick.Rank] {
			issues = append(issues, fmt.Sprintf("executiveBriefing[%d]: duplicate rank %d", i, pick.Rank))
		}
		seen[pick.Rank] = true
	}
	return issues
}
