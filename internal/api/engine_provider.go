package api

import (
	"context"

	"github.com/samcharles93/steer/internal/inference"
	"github.com/samcharles93/steer/internal/toy"
)

// EngineProvider hands a ready engine and its generation defaults to fn.
// The engine is only valid for the duration of the call.
type EngineProvider interface {
	WithEngine(ctx context.Context, seed int64, fn func(engine inference.Engine, defaults inference.GenDefaults) error) error
}

// LocalEngineProvider builds a seeded toy-backed engine per call.
type LocalEngineProvider struct {
	defaults inference.GenDefaults
}

func NewLocalEngineProvider(defaults inference.GenDefaults) *LocalEngineProvider {
	if defaults.EOSTokens == nil {
		defaults.EOSTokens = []int{toy.EOSID()}
	}
	return &LocalEngineProvider{defaults: defaults}
}

func (p *LocalEngineProvider) WithEngine(ctx context.Context, seed int64, fn func(engine inference.Engine, defaults inference.GenDefaults) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	engine := inference.NewLocalEngine(toy.NewModel(seed), toy.NewCodec())
	defer engine.Close()
	return fn(engine, p.defaults)
}
