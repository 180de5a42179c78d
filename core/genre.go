package core

import "strings"

// Genre 是影片类型的枚举值（19 个固定的规范类型）。
//
// 设计原则：
//   - 值类型：无标识、无生命周期，等值即相等
//   - 封闭集合：规范类型表固定，扩展通过别名表而非新增枚举
//   - 归一化是全函数：任意非空输入要么命中唯一的 Genre，要么返回
//     UNRECOGNIZED_GENRE 错误，由调用方决定严格（目录校验）或宽松
//     （偏好解析时静默丢弃）策略
type Genre string

const (
	GenreAction         Genre = "Action"
	GenreAdventure      Genre = "Adventure"
	GenreAnimation      Genre = "Animation"
	GenreComedy         Genre = "Comedy"
	GenreCrime          Genre = "Crime"
	GenreDocumentary    Genre = "Documentary"
	GenreDrama          Genre = "Drama"
	GenreFamily         Genre = "Family"
	GenreFantasy        Genre = "Fantasy"
	GenreHistory        Genre = "History"
	GenreHorror         Genre = "Horror"
	GenreMusic          Genre = "Music"
	GenreMystery        Genre = "Mystery"
	GenreRomance        Genre = "Romance"
	GenreScienceFiction Genre = "Science Fiction"
	GenreTVMovie        Genre = "TV Movie"
	GenreThriller       Genre = "Thriller"
	GenreWar            Genre = "War"
	GenreWestern        Genre = "Western"
)

// allGenres 按固定顺序排列，AllGenres 每次返回副本以保证不可变。
var allGenres = []Genre{
	GenreAction,
	GenreAdventure,
	GenreAnimation,
	GenreComedy,
	GenreCrime,
	GenreDocumentary,
	GenreDrama,
	GenreFamily,
	GenreFantasy,
	GenreHistory,
	GenreHorror,
	GenreMusic,
	GenreMystery,
	GenreRomance,
	GenreScienceFiction,
	GenreTVMovie,
	GenreThriller,
	GenreWar,
	GenreWestern,
}

// genreIndex 是归一化匹配表：key 为小写去空白后的形式。
// 除规范名外还包含已知别名（sci-fi / scifi / science-fiction → Science Fiction 等）。
var genreIndex = buildGenreIndex()

func buildGenreIndex() map[string]Genre {
	idx := make(map[string]Genre, len(allGenres)*2)
	for _, g := range allGenres {
		idx[foldGenre(string(g))] = g
	}
	// 别名表：随数据源演进可以继续补充，但不新增规范类型
	aliases := map[string]Genre{
		"sci-fi":          GenreScienceFiction,
		"scifi":           GenreScienceFiction,
		"science-fiction": GenreScienceFiction,
		"tv":              GenreTVMovie,
		"tv-movie":        GenreTVMovie,
	}
	for raw, g := range aliases {
		idx[foldGenre(raw)] = g
	}
	return idx
}

// foldGenre 统一大小写并去掉所有空白字符（含内部空格、制表符）。
func foldGenre(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeGenre 将自由文本映射到规范 Genre。
// 大小写不敏感、空白不敏感，并解析已知别名；
// 无法识别时返回 UNRECOGNIZED_GENRE 的 DomainError。
func NormalizeGenre(s string) (Genre, error) {
	if g, ok := genreIndex[foldGenre(s)]; ok {
		return g, nil
	}
	return "", NewDomainError(ModuleGenre, ErrorCodeUnrecognizedGenre, "unknown genre: "+s)
}

// IsValidGenre 是全函数：等价于 "NormalizeGenre 成功"，从不报错。
func IsValidGenre(s string) bool {
	_, ok := genreIndex[foldGenre(s)]
	return ok
}

// AllGenres 返回固定顺序的 19 个规范类型（副本），用于校验与枚举展示。
func AllGenres() []Genre {
	out := make([]Genre, len(allGenres))
	copy(out, allGenres)
	return out
}

// NormalizeGenres 是宽松的批量归一化：逐个归一化并静默丢弃无法识别的项。
// 用于偏好解析边界；目录校验请逐个调用 NormalizeGenre 并按硬错误处理。
func NormalizeGenres(ss []string) []Genre {
	out := make([]Genre, 0, len(ss))
	for _, s := range ss {
		if g, err := NormalizeGenre(s); err == nil {
			out = append(out, g)
		}
	}
	return out
}

func (g Genre) String() string { return string(g) }
