package provider

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/logger"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
)

// reportShape 两个服务商共用的返回结构约束。
// 顶层两个键必须存在且为数组；行内字段只约束类型。
var reportShape = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"analysisTable", "executiveBriefing"},
	"properties": map[string]interface{}{
		"analysisTable": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"domainName":         map[string]interface{}{"type": "string"},
					"brandArchetype":     map[string]interface{}{"type": "string"},
					"atomScore":          map[string]interface{}{"type": "integer"},
					"linguisticAnalysis": map[string]interface{}{"type": "string"},
					"keyStrengths":       map[string]interface{}{"type": "string"},
					"weaknessesOrRisks":  map[string]interface{}{"type": "string"},
					"idealUseCases":      map[string]interface{}{"type": "string"},
					"valuation":          map[string]interface{}{"type": "string"},
				},
			},
		},
		"executiveBriefing": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rank":          map[string]interface{}{"type": "integer"},
					"domainName":    map[string]interface{}{"type": "string"},
					"justification": map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

var compiledShape = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(reportShape))
})

// CleanJSON 去掉模型可能包裹的 ```json ... ``` 代码块
func CleanJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// DecodeReport 解析模型返回的文本。
// 任何解析或结构问题都返回 MalformedResponse，不会返回部分报告。
func DecodeReport(name Name, text string) (*model.Report, error) {
	malformed := model.ErrorMalformed(fmt.Sprintf("Invalid response format from %s API.", name.DisplayName()))
	cleaned := CleanJSON(text)

	schema, err := compiledShape()
	if err != nil {
		return nil, fmt.Errorf("compile report schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		logger.Log.WithField("provider", name).Errorf("返回内容不是合法 JSON: %v", err)
		return nil, malformed.WithCause(err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		logger.Log.WithField("provider", name).Errorf("返回结构校验失败: %v", errs)
		return nil, malformed.WithCause(fmt.Errorf("report validation failed: %v", errs))
	}

	var report model.Report
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		logger.Log.WithField("provider", name).Errorf("json unmarshal: %v", err)
		return nil, malformed.WithCause(err)
	}
	return &report, nil
}
