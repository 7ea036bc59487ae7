// Package cache 实现推荐结果缓存：按 (用户, 评分指纹) 记忆化，LRU 容量上限。
package cache

import (
	"sort"
	"strconv"
	"strings"
)

// Fingerprint 把用户当前的评分画像确定性地序列化为指纹串。
// (itemID, value) 按 itemID 升序拼接，任何评分的新增、修改、删除都会改变指纹，
// 因此指纹不匹配永远是 miss，缓存不可能返回过期结果。
//
// 形如 "3:4.5;12:5"；空画像返回 ""。
func Fingerprint(profile map[int64]float64) string {
	if len(profile) == 0 {
		return ""
	}

	ids := make([]int64, 0, len(profile))
	for id := range profile {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(profile[id], 'g', -1, 64))
	}
	return b.String()
}
