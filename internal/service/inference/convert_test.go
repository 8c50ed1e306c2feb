package inference

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/cvescope/backend/internal/config"
	"github.com/cvescope/backend/internal/model/chat"
)

var conversation = []chat.Message{
	{Role: chat.RoleSystem, Content: "classify log entries"},
	{Role: chat.RoleUser, Content: "entry: GET /api/v2/subscriptions"},
	{Role: chat.RoleAssistant, Content: "[2, 91]"},
}

func TestToSchemaMessages(t *testing.T) {
	out := toSchemaMessages(conversation)

	if len(out) != len(conversation) {
		t.Fatalf("expected %d messages, got %d", len(conversation), len(out))
	}

	wantRoles := []schema.RoleType{schema.System, schema.User, schema.Assistant}
	for i, msg := range out {
		if msg.Role != wantRoles[i] {
			t.Fatalf("message %d: role %q, want %q", i, msg.Role, wantRoles[i])
		}
		if msg.Content != conversation[i].Content {
			t.Fatalf("message %d: content %q, want %q", i, msg.Content, conversation[i].Content)
		}
	}
}

func TestToSchemaMessagesUnknownRole(t *testing.T) {
	out := toSchemaMessages([]chat.Message{{Role: "tool", Content: "x"}})
	if out[0].Role != schema.User {
		t.Fatalf("unknown role should map to user, got %q", out[0].Role)
	}
}

func TestToOpenAIMessages(t *testing.T) {
	out := toOpenAIMessages(conversation)

	if len(out) != len(conversation) {
		t.Fatalf("expected %d messages, got %d", len(conversation), len(out))
	}
	if out[0].OfSystem == nil {
		t.Fatal("first message should carry the system variant")
	}
	if out[1].OfUser == nil {
		t.Fatal("second message should carry the user variant")
	}
	if out[2].OfAssistant == nil {
		t.Fatal("third message should carry the assistant variant")
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := config.InferenceConfig{Provider: "bedrock", Model: "m", APIKey: "k"}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewRejectsMissingCredentials(t *testing.T) {
	cfg := config.InferenceConfig{Provider: config.ProviderOpenAI, Model: "m"}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error when credentials are absent")
	}
}
