// Package builders 通过空白导入触发内置 Node 的注册：
//
//	import _ "github.com/rushteam/cinerec/config/builders"
//
// 配置驱动的入口（如 cmd/）导入本包后，pipeline 配置中的
// recall.catalog、rank.rule 等类型即可被 config.ValidatePipelineConfig
// 与 config.DefaultFactory 识别。
package builders

import (
	"github.com/rushteam/cinerec/config"
)

func init() {
	config.Register("recall.catalog", config.BuildCatalogNode)
	config.Register("recall.fanout", config.BuildFanoutNode)
	config.Register("rank.rule", config.BuildRuleNode)
	config.Register("rerank.topn", config.BuildTopNNode)
	config.Register("rerank.diversity", config.BuildDiversityNode)
	config.Register("filter", config.BuildFilterNode)
}
