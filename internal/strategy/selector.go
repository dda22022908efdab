package strategy

import (
	"errors"
	"fmt"
	"log"
)

var ErrStrategyNotFound = errors.New("当前选择的方案尚未支持")

type Selector struct {
	registry *Registry
}

func NewSelector(registry *Registry) *Selector {
	return &Selector{
		registry: registry,
	}
}

func (s *Selector) Select(name string, mode string) (Strategy, error) {
	strategy, ok := s.registry.GetStrategy(name, mode)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrStrategyNotFound, name, mode)
	}
	log.Printf("[选择器] 当前选择的方案: %s 模式: %s\n", name, mode)
	return strategy, nil
}
