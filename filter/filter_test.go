package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/cinerec/core"
)

func catalogItems() []*core.Item {
	return []*core.Item{
		core.NewItem(603, "The Matrix", []string{"Action", "Science Fiction"}, 8.7),
		core.NewItem(999, "Bad Data", []string{"Action", "Kung Fu"}, 5.0),
	}
}

func TestValidGenresFilterLenient(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&ValidGenresFilter{}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, catalogItems())
	if err != nil {
		t.Fatalf("宽松模式不应报错: %v", err)
	}
	if len(out) != 1 || out[0].ID != 603 {
		t.Errorf("带未识别类型的影片应被静默过滤: %+v", out)
	}
}

func TestValidGenresFilterStrict(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&ValidGenresFilter{Strict: true}}}
	_, err := node.Process(context.Background(), &core.RecommendContext{}, catalogItems())
	if err == nil {
		t.Fatal("严格模式遇到脏数据应中断")
	}
	if !core.IsUnrecognizedGenre(err) {
		t.Errorf("错误分类应为 UNRECOGNIZED_GENRE: %v", err)
	}
}

func TestDSLFilter(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&DSLFilter{Expr: "item.rating >= 6.0"}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, catalogItems())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != 603 {
		t.Errorf("低分影片应被过滤: %+v", out)
	}
}

func TestDSLFilterEmptyExpr(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&DSLFilter{}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, catalogItems())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("空表达式恒真，不过滤: %d", len(out))
	}
}

type brokenFilter struct{}

func (f *brokenFilter) Name() string { return "broken" }
func (f *brokenFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, _ *core.Item) (bool, error) {
	return false, errors.New("transient failure")
}

func TestFilterNodeSkipsNonDomainErrors(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&brokenFilter{}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, catalogItems())
	if err != nil {
		t.Fatalf("非领域错误应跳过该过滤器而非中断: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("过滤器失效时应保留全部候选: %d", len(out))
	}
}

func TestFilterNodeLabelsFiltered(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&DSLFilter{Expr: "item.rating >= 6.0"}}}
	in := catalogItems()
	if _, err := node.Process(context.Background(), &core.RecommendContext{}, in); err != nil {
		t.Fatal(err)
	}
	lbl, ok := in[1].Labels["filtered"]
	if !ok {
		t.Fatal("被过滤的影片应带 filtered 标签")
	}
	if lbl.Source != "filter.dsl" {
		t.Errorf("标签来源应为过滤器名: %q", lbl.Source)
	}
}
