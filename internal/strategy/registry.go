package strategy

import (
	"fmt"
	"sort"
)

type Registry struct {
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

func key(name string, mode string) string {
	return fmt.Sprintf("%s-%s", name, mode)
}

func (r *Registry) Register(strategy Strategy) {
	r.strategies[key(strategy.GetName(), strategy.GetMode())] = strategy
}

func (r *Registry) GetStrategy(name string, mode string) (Strategy, bool) {
	strategy, ok := r.strategies[key(name, mode)]
	return strategy, ok
}

// GetStrategyList 按 名称-模式 排序, 便于展示
func (r *Registry) GetStrategyList() []Strategy {
	keys := make([]string, 0, len(r.strategies))
	for k := range r.strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	strategies := make([]Strategy, 0, len(keys))
	for _, k := range keys {
		strategies = append(strategies, r.strategies[k])
	}
	return strategies
}
