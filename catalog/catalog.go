// Package catalog 实现影片目录索引与基于内容的相似度模型。
//
// 目录在进程启动时构建一次，此后不可变：每部影片的 genre 标签被归一化为
// token 序列，并在全量目录的词表上做一次 TF-IDF 加权，得到每部影片固定的
// 特征向量。任意两部影片的内容相似度即两个特征向量的余弦。
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// Movie 是目录的输入记录。Genres 为 '|' 分隔的标签串，如 "Action|Comedy"。
type Movie struct {
	ID     int64
	Title  string
	Genres string
}

// Catalog 是不可变的影片目录索引。
// items 保持加载顺序；vectors 与 items 按下标一一对应。
type Catalog struct {
	items   []*core.Item
	index   map[int64]int // itemID -> 下标
	vectors []sparseVec   // L2 归一化后的 TF-IDF 向量
}

var yearRe = regexp.MustCompile(`\((\d{4})\)\s*$`)

// New 从记录列表构建目录并完成 TF-IDF 向量化。
// 目录为空视为配置错误：引擎没有目录无法工作。
func New(movies []Movie) (*Catalog, error) {
	if len(movies) == 0 {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: no movies")
	}

	c := &Catalog{
		items: make([]*core.Item, 0, len(movies)),
		index: make(map[int64]int, len(movies)),
	}
	docs := make([][]string, 0, len(movies))

	for _, m := range movies {
		if _, dup := c.index[m.ID]; dup {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("catalog: duplicate movie id %d", m.ID))
		}

		it := core.NewItem(m.ID)
		it.Title = m.Title
		it.CleanTitle, it.Year = splitTitleYear(m.Title)
		for _, g := range strings.Split(m.Genres, "|") {
			if g = strings.TrimSpace(g); g != "" {
				it.Genres = append(it.Genres, g)
			}
		}

		c.index[m.ID] = len(c.items)
		c.items = append(c.items, it)
		docs = append(docs, tokenize(m.Genres))
	}

	c.vectors = fitTFIDF(docs)
	return c, nil
}

// LoadCSV 从 CSV 文件加载目录。
// 期望表头为 movie_id,title,genres；genres 为 '|' 分隔。
// 加载失败是启动期致命错误，由调用方决定中止。
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var movies []Movie
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		line++
		if line == 1 && looksLikeHeader(rec) {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("catalog line %d: want 3 fields, got %d", line, len(rec))
		}
		id, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad movie id %q", line, rec[0])
		}
		movies = append(movies, Movie{ID: id, Title: rec[1], Genres: rec[2]})
	}

	return New(movies)
}

func looksLikeHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	return err != nil
}

func splitTitleYear(title string) (string, int) {
	m := yearRe.FindStringSubmatch(title)
	if m == nil {
		return strings.TrimSpace(title), 0
	}
	year, _ := strconv.Atoi(m[1])
	clean := strings.TrimSpace(yearRe.ReplaceAllString(title, ""))
	return clean, year
}

// Len 返回目录大小。
func (c *Catalog) Len() int { return len(c.items) }

// Items 返回目录序的只读 Item 列表。调用方不应修改返回的 Item。
func (c *Catalog) Items() []*core.Item { return c.items }

// At 返回目录序第 pos 个影片。
func (c *Catalog) At(pos int) *core.Item { return c.items[pos] }

// ByID 按 itemID 查找影片。
func (c *Catalog) ByID(id int64) (*core.Item, bool) {
	pos, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.items[pos], true
}

// Position 返回 itemID 在目录中的下标。
func (c *Catalog) Position(id int64) (int, bool) {
	pos, ok := c.index[id]
	return pos, ok
}

// Features 返回影片的 TF-IDF 特征向量（token -> 权重，L2 归一化）。
// 未知 id 返回 nil。
func (c *Catalog) Features(id int64) map[string]float64 {
	pos, ok := c.index[id]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(c.vectors[pos]))
	for k, v := range c.vectors[pos] {
		out[k] = v
	}
	return out
}

// Similarity 返回两部影片的内容余弦相似度，取值 [-1, 1]。
// 任一 id 不在目录中时返回 0（调用方按约定跳过，不报错）。
func (c *Catalog) Similarity(a, b int64) float64 {
	pa, ok := c.index[a]
	if !ok {
		return 0
	}
	pb, ok := c.index[b]
	if !ok {
		return 0
	}
	return dot(c.vectors[pa], c.vectors[pb])
}

// SimilarityRow 返回 id 对目录中每部影片的相似度，目录序。
// 相似度矩阵从不整体物化，每次查询按行计算。未知 id 返回 nil。
func (c *Catalog) SimilarityRow(id int64) []float64 {
	pos, ok := c.index[id]
	if !ok {
		return nil
	}
	row := make([]float64, len(c.items))
	for j := range c.items {
		row[j] = dot(c.vectors[pos], c.vectors[j])
	}
	return row
}
