package prompt

import (
	"strings"
	"testing"
)

func TestBuildListsAllReferences(t *testing.T) {
	refs := []Reference{
		{ID: "CVE-2024-0001", Endpoint: "/a", Description: "first."},
		{ID: "CVE-2024-0002", Endpoint: "/b", Description: "second."},
	}

	text := Build(refs)

	for _, ref := range refs {
		if !strings.Contains(text, ref.ID) {
			t.Fatalf("prompt missing %s", ref.ID)
		}
		if !strings.Contains(text, ref.Endpoint) {
			t.Fatalf("prompt missing endpoint %s", ref.Endpoint)
		}
	}

	first := strings.Index(text, "CVE-2024-0001")
	second := strings.Index(text, "CVE-2024-0002")
	if first > second {
		t.Fatal("references listed out of order")
	}
}

func TestDefaultPromptShape(t *testing.T) {
	text := Default()

	if text == "" {
		t.Fatal("default prompt is empty")
	}
	if !strings.Contains(text, "JSON array of confidence percentages") {
		t.Fatal("default prompt missing output contract")
	}
	for _, ref := range DefaultReferences {
		if !strings.Contains(text, ref.ID) {
			t.Fatalf("default prompt missing %s", ref.ID)
		}
	}
}
