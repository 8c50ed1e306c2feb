package inference

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/cvescope/backend/internal/config"
	"github.com/cvescope/backend/internal/model/chat"
)

const (
	arkDefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
)

// arkService proxies to a Volcengine Ark deployment through eino.
type arkService struct {
	model model.ChatModel
}

func newArkService(ctx context.Context, cfg config.InferenceConfig) (*arkService, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = arkDefaultBaseURL
	}

	var temperature *float32
	if cfg.Temperature != nil {
		val := float32(*cfg.Temperature)
		temperature = &val
	}

	var topP *float32
	if cfg.TopP != nil {
		val := float32(*cfg.TopP)
		topP = &val
	}

	maxTokens := cfg.MaxTokens

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     baseURL,
		Region:      cfg.Region,
		APIKey:      cfg.APIKey,
		AccessKey:   cfg.AccessKey,
		SecretKey:   cfg.SecretKey,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
	}

	return &arkService{model: chatModel}, nil
}

func (s *arkService) Complete(ctx context.Context, msgs []chat.Message) (string, error) {
	resp, err := s.model.Generate(ctx, toSchemaMessages(msgs))
	if err != nil {
		return "", fmt.Errorf("ark generate: %w", err)
	}
	return resp.Content, nil
}

func (s *arkService) Stream(ctx context.Context, msgs []chat.Message) (Stream, error) {
	reader, err := s.model.Stream(ctx, toSchemaMessages(msgs))
	if err != nil {
		return nil, fmt.Errorf("ark stream: %w", err)
	}
	return &arkStream{reader: reader}, nil
}

// toSchemaMessages converts wire messages to eino schema messages, preserving
// order. Unknown roles are treated as user turns.
func toSchemaMessages(msgs []chat.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case chat.RoleSystem:
			out = append(out, schema.SystemMessage(m.Content))
		case chat.RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		default:
			out = append(out, schema.UserMessage(m.Content))
		}
	}
	return out
}

type arkStream struct {
	reader *schema.StreamReader[*schema.Message]
}

// Recv skips empty chunks so callers only see content deltas.
func (s *arkStream) Recv() (string, error) {
	for {
		msg, err := s.reader.Recv()
		if err != nil {
			return "", err
		}
		if msg == nil || msg.Content == "" {
			continue
		}
		return msg.Content, nil
	}
}

func (s *arkStream) Close() error {
	s.reader.Close()
	return nil
}
