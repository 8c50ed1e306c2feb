package inference

import (
	"context"
	"fmt"

	"github.com/cvescope/backend/internal/config"
	"github.com/cvescope/backend/internal/model/chat"
)

// Stream is a lazy, single-consumption sequence of response chunks. Recv
// returns content deltas in arrival order and io.EOF once the model is done.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Service abstracts the hosted inference endpoint the gateway proxies to.
// Implementations receive the full ordered message sequence and the
// configured generation cap; they never retry.
type Service interface {
	// Complete runs a completion to the end and returns the final text.
	Complete(ctx context.Context, msgs []chat.Message) (string, error)
	// Stream starts a streaming completion. The caller owns the returned
	// stream and must close it.
	Stream(ctx context.Context, msgs []chat.Message) (Stream, error)
}

// New builds the provider selected by cfg.Provider.
func New(ctx context.Context, cfg config.InferenceConfig) (Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("inference credentials or model missing")
	}

	switch cfg.Provider {
	case config.ProviderArk:
		svc, err := newArkService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.ProviderOpenAI, "":
		svc, err := newOpenAIService(cfg)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown inference provider %q", cfg.Provider)
	}
}
