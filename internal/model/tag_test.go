package model

import "testing"

func TestContextTags_FixedSet(t *testing.T) {
	tags := ContextTags()
	if len(tags) != 8 {
		t.Fatalf("expected 8 tags, got %d", len(tags))
	}
	for _, tag := range tags {
		if !tag.Valid() {
			t.Fatalf("expected tag %q to be valid", tag)
		}
		if tag.DisplayPhrase() == "" {
			t.Fatalf("expected tag %q to have a display phrase", tag)
		}
	}
}

func TestContextTag_Invalid(t *testing.T) {
	for _, tag := range []ContextTag{"", "stranger", "Former-Student", "former student"} {
		if tag.Valid() {
			t.Fatalf("expected tag %q to be invalid", tag)
		}
	}
}

func TestContextTag_UnknownFallsBackToOther(t *testing.T) {
	if got := ContextTag("unknown").DisplayPhrase(); got != TagOther.DisplayPhrase() {
		t.Fatalf("expected fallback to the %q phrase, got %q", TagOther, got)
	}
}
