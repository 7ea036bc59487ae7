// Package utils 提供跨包共享的小工具，目前只有 Label。
package utils

// Label 让推荐结果可解释：每个候选影片带着它的打分分量与过滤原因走完链路。
// Value 是标签内容（如格式化后的分数），Source 标记写入方
// （content / collab / filter.rated / filter.rule ...）。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

// MergeLabel 合并同名 Label：历史值不丢弃而是累积，
// Value 以 '|' 连接，Source 以 ',' 连接。空的一侧直接让位于另一侧。
func MergeLabel(existing, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}
	return Label{
		Value:  existing.Value + "|" + incoming.Value,
		Source: joinNonEmpty(existing.Source, incoming.Source, ","),
	}
}

func joinNonEmpty(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + sep + b
	}
}
