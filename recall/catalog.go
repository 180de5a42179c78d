package recall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/pipeline"
)

// Catalog 是影片目录召回源：一次运行的完整候选集。
// - 优先从 Store 读取目录（JSON 数组，key 如 "catalog:movies"）
// - Store 为空或 key 不存在时，使用内存中的 Items 作为 fallback
// Catalog 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Catalog struct {
	Store core.Store
	Key   string       // 存储 key，例如 "catalog:movies"
	Items []*core.Item // fallback 内存目录（调用方直接注入）
}

// catalogEntry 是目录在 Store 中的序列化形态。
type catalogEntry struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Rating float64  `json:"rating"`
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Catalog) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store != nil && r.Key != "" {
		data, err := r.Store.Get(ctx, r.Key)
		switch {
		case err == nil:
			return decodeCatalog(data)
		case core.IsNotFound(err):
			// fallthrough 到内存 fallback
		default:
			return nil, fmt.Errorf("catalog store get %s: %w", r.Key, err)
		}
	}

	out := make([]*core.Item, 0, len(r.Items))
	for _, it := range r.Items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func decodeCatalog(data []byte) ([]*core.Item, error) {
	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	items := make([]*core.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, core.NewItem(e.ID, e.Title, e.Genres, e.Rating))
	}
	return items, nil
}

// EncodeCatalog 将目录序列化为 Store 存储形态（与 Recall 的读取对应）。
func EncodeCatalog(items []*core.Item) ([]byte, error) {
	entries := make([]catalogEntry, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		entries = append(entries, catalogEntry{
			ID:     it.ID,
			Title:  it.Title,
			Genres: it.Genres,
			Rating: it.Rating,
		})
	}
	return json.Marshal(entries)
}
