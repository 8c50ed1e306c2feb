package inference

import (
	"context"
	"fmt"
	"io"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/ssestream"

	"github.com/cvescope/backend/internal/config"
	"github.com/cvescope/backend/internal/model/chat"
)

const openAIDefaultBaseURL = "https://api.openai.com/v1"

// openAIService proxies to any OpenAI-compatible completion endpoint.
type openAIService struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature *float64
	topP        *float64
}

func newOpenAIService(cfg config.InferenceConfig) (*openAIService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires INFERENCE_API_KEY")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
	)

	return &openAIService{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}, nil
}

func (s *openAIService) params(msgs []chat.Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(s.model),
		Messages:  toOpenAIMessages(msgs),
		MaxTokens: openai.Int(int64(s.maxTokens)),
	}
	if s.temperature != nil {
		params.Temperature = openai.Float(*s.temperature)
	}
	if s.topP != nil {
		params.TopP = openai.Float(*s.topP)
	}
	return params
}

// toOpenAIMessages converts wire messages to completion params, preserving
// order. Unknown roles are treated as user turns.
func toOpenAIMessages(msgs []chat.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case chat.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case chat.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func (s *openAIService) Complete(ctx context.Context, msgs []chat.Message) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, s.params(msgs))
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *openAIService) Stream(ctx context.Context, msgs []chat.Message) (Stream, error) {
	stream := s.client.Chat.Completions.NewStreaming(ctx, s.params(msgs))
	if err := stream.Err(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("openai stream: %w", err)
	}
	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
}

// Recv skips chunks without content so callers only see deltas.
func (s *openAIStream) Recv() (string, error) {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
	if err := s.stream.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
