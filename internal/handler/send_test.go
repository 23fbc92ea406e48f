package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/config"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/logger"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/service"
)

type fakeRelayer struct {
	err  error
	got  *model.Gratitude
	hits int
}

func (f *fakeRelayer) Send(ctx context.Context, g *model.Gratitude) error {
	f.hits++
	f.got = g
	return f.err
}

func newTestHandler(relayer Relayer) *Handler {
	cfg := &config.Config{}
	cfg.Relay.MaxMessageLength = 2000
	return New(nil, nil, logger.New("disabled", "json"), cfg, relayer)
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Reason  string `json:"reason"`
}

func postSend(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Send(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v: %s", err, rr.Body.String())
	}
	return body
}

const validBody = `{"message":"thank you","recipient_email":"teacher@example.com","context_tag":"former-student","sender_token":"tok"}`

func TestSend_Success(t *testing.T) {
	relayer := &fakeRelayer{}
	rr := postSend(t, newTestHandler(relayer), validBody)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body)
	}
	if relayer.hits != 1 {
		t.Fatalf("expected exactly one pipeline invocation, got %d", relayer.hits)
	}
	if relayer.got.Tag != model.TagFormerStudent {
		t.Fatalf("expected normalized request to reach the pipeline")
	}
}

func TestSend_MalformedJSON(t *testing.T) {
	relayer := &fakeRelayer{}
	rr := postSend(t, newTestHandler(relayer), "not json")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error)
	}
	if relayer.hits != 0 {
		t.Fatalf("expected pipeline not to run for malformed input")
	}
}

func TestSend_MessageTooLong(t *testing.T) {
	relayer := &fakeRelayer{}
	long := strings.Repeat("x", 2001)
	payload, _ := json.Marshal(map[string]string{
		"message":         long,
		"recipient_email": "teacher@example.com",
		"context_tag":     "old-friend",
		"sender_token":    "tok",
	})
	rr := postSend(t, newTestHandler(relayer), string(payload))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Error != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error)
	}
	if !strings.Contains(body.Reason, "2000") {
		t.Fatalf("expected the reason to mention the limit, got %q", body.Reason)
	}
}

func TestSend_InvalidEmail(t *testing.T) {
	rr := postSend(t, newTestHandler(&fakeRelayer{}),
		`{"message":"hi","recipient_email":"not-an-email","context_tag":"old-friend","sender_token":"tok"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error)
	}
}

func TestSend_InvalidTag(t *testing.T) {
	rr := postSend(t, newTestHandler(&fakeRelayer{}),
		`{"message":"hi","recipient_email":"a@example.com","context_tag":"nemesis","sender_token":"tok"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error)
	}
}

func TestSend_RateLimited(t *testing.T) {
	rr := postSend(t, newTestHandler(&fakeRelayer{err: service.ErrRateLimited}), validBody)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error != "rate_limited" {
		t.Fatalf("expected rate_limited, got %q", body.Error)
	}
}

func TestSend_MessageRejected(t *testing.T) {
	rr := postSend(t, newTestHandler(&fakeRelayer{err: service.ErrMessageRejected}), validBody)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error != "message_rejected" {
		t.Fatalf("expected message_rejected, got %q", body.Error)
	}
}

func TestSend_DeliveryFailure(t *testing.T) {
	rr := postSend(t, newTestHandler(&fakeRelayer{err: service.ErrDeliveryFailed}), validBody)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error != "server_error" {
		t.Fatalf("expected server_error, got %q", body.Error)
	}
}

func TestSend_UnknownPipelineError(t *testing.T) {
	rr := postSend(t, newTestHandler(&fakeRelayer{err: context.DeadlineExceeded}), validBody)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Error != "server_error" {
		t.Fatalf("expected server_error, got %q", body.Error)
	}
	if strings.Contains(body.Reason, "deadline") {
		t.Fatalf("internal error details must not leak to the client: %q", body.Reason)
	}
}

func TestSend_ResponsesAreAlwaysOneOfTheDefinedShapes(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"rate_limited", service.ErrRateLimited},
		{"rejected", service.ErrMessageRejected},
		{"delivery", service.ErrDeliveryFailed},
	}
	for _, tc := range cases {
		rr := postSend(t, newTestHandler(&fakeRelayer{err: tc.err}), validBody)

		var body map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: response is not valid JSON: %v", tc.name, err)
		}
		success, ok := body["success"].(bool)
		if !ok {
			t.Fatalf("%s: response has no boolean success field", tc.name)
		}
		if !success {
			if _, ok := body["error"].(string); !ok {
				t.Fatalf("%s: failure response missing error code", tc.name)
			}
			if _, ok := body["reason"].(string); !ok {
				t.Fatalf("%s: failure response missing reason", tc.name)
			}
		}
	}
}
