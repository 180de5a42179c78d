// Package cinerec 是一个电影推荐工具包（Cinema Recommender）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 双通道: 本地规则排序与外部高精度引擎并发执行，外部结果为权威输出（见 hybrid 包）
// - 防御式边界: 外部引擎响应属不可信输入，逐字段判空后再并入输出文档
package cinerec

import "github.com/rushteam/cinerec/pipeline"

// 轻量 facade：便于用户直接 import "cinerec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
