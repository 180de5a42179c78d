package core

import "testing"

func TestNormalizeGenre(t *testing.T) {
	tests := []struct {
		input string
		want  Genre
	}{
		{"Action", GenreAction},
		{"action", GenreAction},
		{"ACTION", GenreAction},
		{"  Action  ", GenreAction},
		{"Science Fiction", GenreScienceFiction},
		{"science fiction", GenreScienceFiction},
		{"ScienceFiction", GenreScienceFiction},
		{"sci-fi", GenreScienceFiction},
		{"Sci-Fi", GenreScienceFiction},
		{"SCIFI", GenreScienceFiction},
		{"science-fiction", GenreScienceFiction},
		{"tv", GenreTVMovie},
		{"TV", GenreTVMovie},
		{"tv-movie", GenreTVMovie},
		{"TV Movie", GenreTVMovie},
		{"t v movie", GenreTVMovie},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeGenre(tt.input)
			if err != nil {
				t.Fatalf("NormalizeGenre(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeGenre(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeGenreUnrecognized(t *testing.T) {
	for _, input := range []string{"", "Kung Fu", "acton", "sciencefict"} {
		_, err := NormalizeGenre(input)
		if err == nil {
			t.Errorf("NormalizeGenre(%q) 应失败", input)
			continue
		}
		if !IsUnrecognizedGenre(err) {
			t.Errorf("错误分类应为 UNRECOGNIZED_GENRE: %v", err)
		}
	}
}

func TestNormalizeGenreCaseWhitespaceEquivalence(t *testing.T) {
	variants := []string{"Science Fiction", "science fiction", " SCIENCE  FICTION ", "sci-fi", "SCIFI"}
	first, err := NormalizeGenre(variants[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range variants[1:] {
		got, err := NormalizeGenre(v)
		if err != nil {
			t.Fatalf("NormalizeGenre(%q): %v", v, err)
		}
		if got != first {
			t.Errorf("大小写/空白变体必须归一到同一类型: %q → %q, want %q", v, got, first)
		}
	}
}

func TestAllGenres(t *testing.T) {
	genres := AllGenres()
	if len(genres) != 19 {
		t.Fatalf("规范类型数 = %d, want 19", len(genres))
	}
	if genres[0] != GenreAction || genres[18] != GenreWestern {
		t.Errorf("顺序应稳定: 首 %q 尾 %q", genres[0], genres[18])
	}

	// 返回副本：修改不影响内部表
	genres[0] = "mutated"
	if AllGenres()[0] != GenreAction {
		t.Error("AllGenres 必须返回副本")
	}
}

func TestNormalizeGenresLenient(t *testing.T) {
	got := NormalizeGenres([]string{"action", "Kung Fu", "sci-fi"})
	if len(got) != 2 || got[0] != GenreAction || got[1] != GenreScienceFiction {
		t.Errorf("宽松解析应丢弃无法识别的类型: %v", got)
	}

	if got := NormalizeGenres(nil); len(got) != 0 {
		t.Errorf("空输入应产出空结果: %v", got)
	}
}

func TestIsValidGenre(t *testing.T) {
	if !IsValidGenre("western") {
		t.Error("western 应合法")
	}
	if IsValidGenre("not-a-genre") {
		t.Error("not-a-genre 不应合法")
	}
}
