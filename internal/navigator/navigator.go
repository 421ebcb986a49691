// Package navigator 基于大纲构建目录，并根据滚动位置计算当前激活的章节。
package navigator

import (
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/outline"
)

const (
	// ProximityThreshold 标题顶部距视口顶部的纳入阈值
	ProximityThreshold = 200.0
	// TargetOffset 激活判定的目标偏移
	TargetOffset = 50.0
)

// EmptyPlaceholder 大纲为空时目录展示的占位文案
const EmptyPlaceholder = "No sections found"

// TOCItem 目录条目，与大纲记录一一对应
type TOCItem struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	AnchorID string `json:"anchor_id"`
	Active   bool   `json:"active"`
}

// HeadingPosition 视口内一个标题元素的位置快照
type HeadingPosition struct {
	AnchorID string  `json:"anchor_id"`
	Top      float64 `json:"top"` // 相对视口顶部的偏移
}

// BuildTOC 将大纲按 1:1 转换为目录条目
func BuildTOC(entries []outline.Entry) []TOCItem {
	items := make([]TOCItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, TOCItem{
			Level:    e.Level,
			Text:     e.Text,
			AnchorID: e.AnchorID,
		})
	}
	return items
}

// Activate 独占激活指定锚点对应的条目，其余条目全部取消激活。
// 锚点不存在时所有条目都处于未激活状态。
func Activate(items []TOCItem, anchorID string) []TOCItem {
	for i := range items {
		items[i].Active = items[i].AnchorID == anchorID
	}
	return items
}

// ActiveAnchor 根据标题位置快照计算当前章节。
// 在顶部偏移 <= ProximityThreshold 的标题中，取 |top - TargetOffset| 最小者；
// 没有命中时回落到第一个标题。纯函数，相同输入得到相同结果。
func ActiveAnchor(positions []HeadingPosition) string {
	if len(positions) == 0 {
		return ""
	}

	active := positions[0].AnchorID
	minDistance := -1.0

	for _, p := range positions {
		if p.Top > ProximityThreshold {
			continue
		}
		distance := p.Top - TargetOffset
		if distance < 0 {
			distance = -distance
		}
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
			active = p.AnchorID
		}
	}

	return active
}
