package config

import (
	"fmt"
	"time"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/filter"
	"github.com/rushteam/cinerec/model"
	"github.com/rushteam/cinerec/pipeline"
	"github.com/rushteam/cinerec/pkg/conv"
	"github.com/rushteam/cinerec/rank"
	"github.com/rushteam/cinerec/recall"
	"github.com/rushteam/cinerec/rerank"
)

// DefaultFactory 返回一个包含所有内置 Node 的默认工厂。
func DefaultFactory() *pipeline.NodeFactory {
	factory := registeredFactory()

	// 注册 Recall Nodes
	factory.Register("recall.catalog", BuildCatalogNode)
	factory.Register("recall.fanout", BuildFanoutNode)

	// 注册 Rank Nodes
	factory.Register("rank.rule", BuildRuleNode)

	// 注册 ReRank Nodes
	factory.Register("rerank.topn", BuildTopNNode)
	factory.Register("rerank.diversity", BuildDiversityNode)

	// 注册 Filter Nodes
	factory.Register("filter", BuildFilterNode)

	return factory
}

// BuildCatalogNode 构建内存目录召回节点。
// 配置示例：
//
//	type: recall.catalog
//	config:
//	  key: "catalog:movies"
//	  items:
//	    - {id: 603, title: "The Matrix", genres: ["Action", "Sci-Fi"], rating: 8.7}
func BuildCatalogNode(config map[string]interface{}) (pipeline.Node, error) {
	catalog := &recall.Catalog{
		Key: conv.ConfigGet[string](config, "key", ""),
	}

	if rawItems, ok := config["items"].([]interface{}); ok {
		items := make([]*core.Item, 0, len(rawItems))
		for _, raw := range rawItems {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			id := conv.ConfigGetInt64(m, "id", 0)
			title := conv.ConfigGet[string](m, "title", "")
			genres := conv.SliceAnyToString(m["genres"])
			rating, _ := conv.ToFloat64(m["rating"])
			items = append(items, core.NewItem(id, title, genres, rating))
		}
		catalog.Items = items
	}

	return catalog, nil
}

// BuildFanoutNode 构建多源并发召回节点。
// 目前支持的 source 类型：catalog（内存目录，配置同 recall.catalog）。
func BuildFanoutNode(config map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := config["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet[string](sourceMap, "type", "")
		switch sourceType {
		case "catalog":
			node, err := BuildCatalogNode(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.Catalog))
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet[bool](config, "dedup", true),
	}
	if sec := conv.ConfigGetInt64(config, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(config, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}

	return fanout, nil
}

// BuildRuleNode 构建规则排序节点。
// match_weight 调整类型命中的权重，默认 2.0。
func BuildRuleNode(config map[string]interface{}) (pipeline.Node, error) {
	node := &rank.RuleNode{}
	if w, ok := conv.ToFloat64(config["match_weight"]); ok && w > 0 {
		node.Model = &model.GenreMatch{MatchWeight: w}
	}
	return node, nil
}

// BuildTopNNode 构建 TopN 截断节点。
func BuildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(config, "n", 10)
	return &rerank.TopNNode{N: int(n)}, nil
}

// BuildDiversityNode 构建多样性重排节点。
func BuildDiversityNode(config map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(config, "max_per_genre", 0)
	return &rerank.Diversity{MaxPerGenre: int(n)}, nil
}

// BuildFilterNode 构建过滤节点。
// 配置示例：
//
//	type: filter
//	config:
//	  dsl: 'item.rating >= 6.0'
//	  valid_genres: true
//	  strict: false
func BuildFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	filters := []filter.Filter{}

	if expr := conv.ConfigGet[string](config, "dsl", ""); expr != "" {
		filters = append(filters, &filter.DSLFilter{Expr: expr})
	}
	if conv.ConfigGet[bool](config, "valid_genres", false) {
		filters = append(filters, &filter.ValidGenresFilter{
			Strict: conv.ConfigGet[bool](config, "strict", false),
		})
	}
	if len(filters) == 0 {
		return nil, fmt.Errorf("filter node requires at least one filter (dsl / valid_genres)")
	}

	return &filter.FilterNode{Filters: filters}, nil
}
