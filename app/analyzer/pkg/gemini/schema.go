package gemini

import "google.golang.org/genai"

// reportSchema 声明给 Gemini 的结构化输出 schema
func reportSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	integer := &genai.Schema{Type: genai.TypeInteger}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"analysisTable": {
				Type:        genai.TypeArray,
				Description: "The detailed analysis for each domain.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"domainName":         str(""),
						"brandArchetype":     str(""),
						"atomScore":          integer,
						"linguisticAnalysis": str(""),
						"keyStrengths":       str(""),
						"weaknessesOrRisks":  str(""),
						"idealUseCases":      str(""),
						"valuation":          str("Wholesale / Retail valuation, e.g., $2000 / $10000"),
					},
					Required: []string{
						"domainName", "brandArchetype", "atomScore", "linguisticAnalysis",
						"keyStrengths", "weaknessesOrRisks", "idealUseCases", "valuation",
					},
				},
			},
			"executiveBriefing": {
				Type:        genai.TypeArray,
				Description: "The top 5 investment picks from the list.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"rank":          integer,
						"domainName":    str(""),
						"justification": str(""),
					},
					Required: []string{"rank", "domainName", "justification"},
				},
			},
		},
		Required: []string{"analysisTable", "executiveBriefing"},
	}
}
