// Package outline 从 markdown 文本中提取标题大纲，并为每个标题生成锚点 ID。
package outline

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry 一条大纲记录，对应文档中的一个标题
type Entry struct {
	Level    int    `json:"level"` // 1-3
	Text     string `json:"text"`
	AnchorID string `json:"anchor_id"`
}

var (
	headingRe = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Extract 逐行扫描 markdown，提取 1-3 级标题。
// 不匹配的行和去空白后为空的标题直接跳过，任何输入都不会报错。
// 重复标题的锚点追加 -2、-3 数字后缀，保证大纲内锚点唯一。
func Extract(markup string) []Entry {
	var entries []Entry
	used := make(map[string]bool)
	next := make(map[string]int)

	for _, line := range strings.Split(markup, "\n") {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1])
		text := strings.TrimSpace(m[2])
		// 只有空白内容的标题行不进大纲
		if text == "" {
			continue
		}

		base := anchorIDOf(text)
		anchor := base
		if used[anchor] {
			// 后缀也可能和后续标题的天然锚点撞车，逐个探测到未用为止
			n := next[base]
			if n < 2 {
				n = 2
			}
			for {
				anchor = fmt.Sprintf("%s-%d", base, n)
				n++
				if !used[anchor] {
					break
				}
			}
			next[base] = n
		}
		used[anchor] = true

		entries = append(entries, Entry{
			Level:    level,
			Text:     text,
			AnchorID: anchor,
		})
	}

	return entries
}

// AnchorID 从标题文本派生锚点 ID：去掉内嵌标签后转小写，
// 非字母数字的连续片段折叠为单个 -，并去掉首尾的 -。
// 纯函数，相同文本永远得到相同 ID。
func AnchorID(text string) string {
	stripped := tagRe.ReplaceAllString(text, "")
	id := nonAlnum.ReplaceAllString(strings.ToLower(stripped), "-")
	return strings.Trim(id, "-")
}

// anchorIDOf 对非字符串内容先做字符串化再派生锚点
func anchorIDOf(v any) string {
	if s, ok := v.(string); ok {
		return AnchorID(s)
	}
	return AnchorID(fmt.Sprint(v))
}
