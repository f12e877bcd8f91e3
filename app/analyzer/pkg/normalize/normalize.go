package normalize

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/logger"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
)

// Separator 规整后域名之间的连接符
const Separator = ", "

// 任意空白、逗号、分号、换行的连续组合
var separators = regexp.MustCompile(`[\s,;\n]+`)

// MaxFileSize 上传文件读取上限
const MaxFileSize = 1 << 20

// Domains 将原始文本规整为 "a.com, b.com" 形式。
// 不做去重、大小写转换或语法校验，这些交给 AI 服务商处理。
func Domains(text string) string {
	return strings.Join(Tokens(text), Separator)
}

// Tokens 按分隔符切分并丢弃空项，保持原有顺序
func Tokens(text string) []string {
	fields := separators.Split(strings.TrimSpace(text), -1)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// FromReader 读取上传文件内容并规整。
// 读取失败时返回 FileReadError，调用方应保留原有输入。
func FromReader(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		logger.Log.Warnf("读取文件失败 [%s]: %v", name, err)
		return "", model.ErrorFileRead("Error reading file.").WithCause(err)
	}
	// 超出上限直接拒绝，避免截断出半个域名
	if len(data) > MaxFileSize {
		logger.Log.Warnf("文件过大 [%s]: 超过 %d 字节", name, MaxFileSize)
		return "", model.ErrorFileRead("Error reading file.").WithCause(fmt.Errorf("file exceeds %d bytes", MaxFileSize))
	}
	return Domains(string(data)), nil
}
