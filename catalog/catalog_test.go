package catalog

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "Die Hard (1988)", Genres: "Action"},
		{ID: 2, Title: "Rush Hour (1998)", Genres: "Action|Comedy"},
		{ID: 3, Title: "The Hours (2002)", Genres: "Drama"},
		{ID: 4, Title: "Magnolia (1999)", Genres: "Drama"},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		movies  []Movie
		wantErr bool
	}{
		{name: "ok", movies: testMovies()},
		{name: "empty catalog", movies: nil, wantErr: true},
		{
			name: "duplicate id",
			movies: []Movie{
				{ID: 1, Title: "A", Genres: "Action"},
				{ID: 1, Title: "B", Genres: "Comedy"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.movies)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTitleYearParsing(t *testing.T) {
	c, err := New([]Movie{
		{ID: 1, Title: "Toy Story (1995)", Genres: "Comedy"},
		{ID: 2, Title: "Untitled Project", Genres: "Drama"},
		{ID: 3, Title: "  Heat (1995)  ", Genres: "Action"},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id        int64
		wantTitle string
		wantYear  int
	}{
		{1, "Toy Story", 1995},
		{2, "Untitled Project", 0},
		{3, "Heat", 1995},
	}
	for _, tt := range tests {
		it, ok := c.ByID(tt.id)
		if !ok {
			t.Fatalf("ByID(%d) not found", tt.id)
		}
		if it.CleanTitle != tt.wantTitle || it.Year != tt.wantYear {
			t.Errorf("item %d: got (%q, %d), want (%q, %d)",
				tt.id, it.CleanTitle, it.Year, tt.wantTitle, tt.wantYear)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		genres string
		want   []string
	}{
		{"Action|Comedy", []string{"action", "comedy"}},
		{"Sci-Fi|Film-Noir", []string{"sci", "fi", "film", "noir"}},
		{"(no genres listed)", []string{"no", "genres", "listed"}},
		{"A|B", nil}, // 单字符 token 被丢弃
		{"", nil},
	}
	for _, tt := range tests {
		got := tokenize(tt.genres)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.genres, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	c, err := New(testMovies())
	if err != nil {
		t.Fatal(err)
	}

	// 自相似度为 1（向量已 L2 归一化）
	if got := c.Similarity(1, 1); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("self similarity = %v, want 1.0", got)
	}
	// genre 完全相同的两部影片相似度为 1
	if got := c.Similarity(3, 4); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical genres similarity = %v, want 1.0", got)
	}
	// 部分重叠 > 无重叠
	ab := c.Similarity(1, 2)
	if ab <= 0 || ab >= 1 {
		t.Errorf("partial overlap similarity = %v, want in (0, 1)", ab)
	}
	if got := c.Similarity(1, 3); got != 0 {
		t.Errorf("disjoint genres similarity = %v, want 0", got)
	}
	// 未知 id 按约定返回 0
	if got := c.Similarity(1, 99); got != 0 {
		t.Errorf("unknown id similarity = %v, want 0", got)
	}
}

func TestSimilarityRow(t *testing.T) {
	c, err := New(testMovies())
	if err != nil {
		t.Fatal(err)
	}

	row := c.SimilarityRow(1)
	if len(row) != c.Len() {
		t.Fatalf("row length = %d, want %d", len(row), c.Len())
	}
	for j := 0; j < c.Len(); j++ {
		want := c.Similarity(1, c.At(j).ID)
		if math.Abs(row[j]-want) > 1e-12 {
			t.Errorf("row[%d] = %v, want %v", j, row[j], want)
		}
	}
	if c.SimilarityRow(99) != nil {
		t.Error("SimilarityRow(unknown) should be nil")
	}
}

func TestFeatures(t *testing.T) {
	c, err := New(testMovies())
	if err != nil {
		t.Fatal(err)
	}

	feats := c.Features(2)
	if len(feats) != 2 {
		t.Fatalf("Features(2) = %v, want 2 tokens", feats)
	}
	var norm float64
	for _, w := range feats {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("feature vector norm = %v, want 1.0", math.Sqrt(norm))
	}
	// 返回的是副本，调用方修改不影响目录内部状态
	feats["action"] = 42
	if again := c.Features(2); again["action"] == 42 {
		t.Error("Features should return a copy")
	}
	if c.Features(99) != nil {
		t.Error("Features(unknown) should be nil")
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	data := "movieId,title,genres\n" +
		"1,Toy Story (1995),Animation|Children|Comedy\n" +
		"2,Heat (1995),Action|Crime|Thriller\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	it, ok := c.ByID(2)
	if !ok || it.CleanTitle != "Heat" || it.Year != 1995 {
		t.Errorf("ByID(2) = %+v, ok=%v", it, ok)
	}
	if len(it.Genres) != 3 {
		t.Errorf("genres = %v, want 3 entries", it.Genres)
	}
}

func TestLoadCSVBadInput(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("movieId,title,genres\nxx,Heat,Action\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCSV(bad); err == nil {
		t.Error("want error for non-numeric movie id")
	}

	if _, err := LoadCSV(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("want error for missing file")
	}
}
