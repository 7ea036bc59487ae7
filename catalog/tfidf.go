package catalog

import (
	"math"
	"strings"
	"unicode"
)

// sparseVec 是稀疏特征向量：token -> 权重。
// 目录词表很小（genre 词汇），map 表示足够且避免引入线性代数依赖。
type sparseVec map[string]float64

// tokenize 把 genre 标签串归一化为 token 序列：
// 按非字母数字切分、转小写、丢弃单字符 token。
// "Sci-Fi|Action" -> ["sci", "fi", "action"]
func tokenize(genres string) []string {
	fields := strings.FieldsFunc(strings.ToLower(genres), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// fitTFIDF 在全量目录上拟合 TF-IDF 权重，每个文档得到一个 L2 归一化向量。
//
// 权重公式（带平滑的 idf）：
//   tf(t, d)  = t 在 d 中出现的次数
//   idf(t)    = ln((1 + N) / (1 + df(t))) + 1
//   w(t, d)   = tf * idf，随后对每个文档做 L2 归一化
//
// 归一化后的向量之间余弦相似度退化为点积。
func fitTFIDF(docs [][]string) []sparseVec {
	n := len(docs)

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, t := range doc {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	idf := make(map[string]float64, len(df))
	for t, d := range df {
		idf[t] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	vecs := make([]sparseVec, n)
	for i, doc := range docs {
		vec := make(sparseVec, len(doc))
		for _, t := range doc {
			vec[t] += idf[t] // tf 累加，权重即 tf*idf
		}
		normalize(vec)
		vecs[i] = vec
	}
	return vecs
}

func normalize(v sparseVec) {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for t := range v {
		v[t] /= norm
	}
}

func dot(a, b sparseVec) float64 {
	// 遍历较小的一侧
	if len(b) < len(a) {
		a, b = b, a
	}
	var s float64
	for t, wa := range a {
		if wb, ok := b[t]; ok {
			s += wa * wb
		}
	}
	return s
}
