package email

import (
	"strings"
	"testing"
)

func TestGratitudeEmailHTML_EscapesMessage(t *testing.T) {
	message := `<script>alert("x")</script> & 'quotes'`
	body := GratitudeEmailHTML(message, "an old friend", "StillGrateful")

	for _, raw := range []string{"<script>", `alert("x")`, "'quotes'"} {
		if strings.Contains(body, raw) {
			t.Fatalf("expected %q to be escaped in the HTML body", raw)
		}
	}
	for _, escaped := range []string{"&lt;script&gt;", "&amp;", "&#34;", "&#39;"} {
		if !strings.Contains(body, escaped) {
			t.Fatalf("expected escaped form %q in the HTML body", escaped)
		}
	}
}

func TestGratitudeEmailHTML_PreservesLineBreaks(t *testing.T) {
	body := GratitudeEmailHTML("line one\nline two", "a mentor", "StillGrateful")
	if !strings.Contains(body, "line one<br>line two") {
		t.Fatalf("expected newlines converted to <br>")
	}
}

func TestGratitudeEmailHTML_IncludesDisplayPhrase(t *testing.T) {
	body := GratitudeEmailHTML("thanks", "a former colleague", "StillGrateful")
	if !strings.Contains(body, "a former colleague") {
		t.Fatalf("expected the display phrase in the HTML body")
	}
}

func TestGratitudeEmailText_IncludesMessageVerbatim(t *testing.T) {
	message := `plain text with <angle brackets> & "quotes"`
	body := GratitudeEmailText(message, "an old friend", "StillGrateful")
	if !strings.Contains(body, message) {
		t.Fatalf("expected the plain-text body to carry the message verbatim")
	}
	if !strings.Contains(body, "an old friend") {
		t.Fatalf("expected the display phrase in the plain-text body")
	}
}
