package utils

import (
	"math"
	"strings"
)

// NormalizeQuery 规范化搜索关键词：逐词首字母大写后包裹通配符
// 首字母大写是沿用线上的粗粒度归一化，混合大小写书名靠 ILIKE 兜底
func NormalizeQuery(keyword string) string {
	return "%" + TitleCase(keyword) + "%"
}

// TitleCase 逐词首字母大写，其余字母小写
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Round2 四舍五入保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
