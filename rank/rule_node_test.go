package rank

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/cinerec/core"
)

func testCatalog() []*core.Item {
	return []*core.Item{
		core.NewItem(603, "The Matrix", []string{"Action", "Sci-Fi"}, 8.7),
		core.NewItem(238, "The Godfather", []string{"Crime", "Drama"}, 9.2),
	}
}

func TestRuleNodeScoring(t *testing.T) {
	node := &RuleNode{}
	rctx := &core.RecommendContext{Preferences: []string{"Action", "Sci-Fi"}}

	out, err := node.Process(context.Background(), rctx, testCatalog())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("零命中的影片必须被剔除: got %d items", len(out))
	}
	if out[0].ID != 603 {
		t.Errorf("应只保留 The Matrix: %+v", out[0])
	}
	// 2 次命中 * 2.0 + 8.7
	if out[0].Score != 12.7 {
		t.Errorf("Score = %v, want 12.7", out[0].Score)
	}
}

func TestRuleNodeEmptyPreferences(t *testing.T) {
	node := &RuleNode{}
	rctx := &core.RecommendContext{}

	out, err := node.Process(context.Background(), rctx, testCatalog())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("空偏好集应产出空结果: %v", out)
	}
}

func TestRuleNodeScoreLabel(t *testing.T) {
	node := &RuleNode{}
	rctx := &core.RecommendContext{Preferences: []string{"Action"}}

	out, err := node.Process(context.Background(), rctx, testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out[0].Labels["rank_model"]; !ok {
		t.Error("打分后应携带 rank_model 标签")
	}
}

func TestRecommenderTopNCap(t *testing.T) {
	items := make([]*core.Item, 0, 25)
	for i := 1; i <= 25; i++ {
		items = append(items, core.NewItem(int64(i), fmt.Sprintf("movie-%d", i), []string{"Action"}, float64(i%10)))
	}

	r := &RuleBasedRecommender{}
	out, err := r.Recommend(context.Background(), []string{"Action"}, items)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out) != core.Defaults.DefaultTopN() {
		t.Errorf("TopN 未设置时应取默认上限 %d: got %d", core.Defaults.DefaultTopN(), len(out))
	}
}

func TestRecommenderIdempotent(t *testing.T) {
	prefs := []string{"Action", "Sci-Fi"}
	items := []*core.Item{
		core.NewItem(3, "a", []string{"Action"}, 8.0),
		core.NewItem(1, "b", []string{"Action"}, 8.0),
		core.NewItem(2, "c", []string{"Action"}, 8.0),
	}

	r := &RuleBasedRecommender{}
	first, err := r.Recommend(context.Background(), prefs, items)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Recommend(context.Background(), prefs, items)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("条数不一致: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("相同输入必须产出相同顺序: 第 %d 位 %d != %d", i, first[i].ID, second[i].ID)
		}
	}
	// 同分同评分时 ID 升序
	if first[0].ID != 1 || first[1].ID != 2 || first[2].ID != 3 {
		t.Errorf("平分时应按 ID 升序: %v", []int64{first[0].ID, first[1].ID, first[2].ID})
	}
}

func TestRecommenderEmptyInputs(t *testing.T) {
	r := &RuleBasedRecommender{}

	if out, err := r.Recommend(context.Background(), nil, testCatalog()); err != nil || len(out) != 0 {
		t.Errorf("空偏好: out=%v err=%v", out, err)
	}
	if out, err := r.Recommend(context.Background(), []string{"Action"}, nil); err != nil || len(out) != 0 {
		t.Errorf("空目录: out=%v err=%v", out, err)
	}
}
