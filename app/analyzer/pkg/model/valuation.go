package model

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseRetailValuation 取出估值字符串中 "/" 之后的零售价数值。
// 没有 "/" 或无法解析时返回 0。
func ParseRetailValuation(valuation string) int {
	parts := strings.Split(valuation, "/")
	if len(parts) < 2 {
		return 0
	}
	retail := strings.TrimSpace(parts[1])

	var digits strings.Builder
	for _, r := range retail {
		switch {
		case r == ',' || unicode.Is(unicode.Sc, r):
			// 去掉千分位和货币符号
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		default:
			// 与 parseInt 一致：遇到第一个非数字字符就停止
			if digits.Len() > 0 {
				return atoi(digits.String())
			}
			return 0
		}
	}
	return atoi(digits.String())
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
