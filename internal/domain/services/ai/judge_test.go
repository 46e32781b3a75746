package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scamradar/internal/infrastructure/cache"
	"scamradar/pkg/logger"
)

type mockChat struct {
	response string
	err      error
	calls    int
}

func (m *mockChat) Chat(_ context.Context, _ []Message) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func newTestJudge(t *testing.T, chat ChatClient, pageHTML string) (*ContentJudge, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pageHTML == "" {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(pageHTML))
	}))
	t.Cleanup(srv.Close)

	fetcher := NewFetcher(logger.NewNop())
	judge := NewContentJudge(chat, fetcher, cache.NewBoundedTTLCache(time.Minute, 500), logger.NewNop())
	return judge, srv
}

func TestJudgeParsesVerdict(t *testing.T) {
	chat := &mockChat{response: `{"score":85,"confidence":0.9,"category":"gambling","reasons":["casino content"]}`}
	judge, srv := newTestJudge(t, chat, "<html><body>casino</body></html>")

	outcome := judge.Judge(context.Background(), srv.URL, "example.org")
	v := outcome.Verdict
	if v.Score != 85 || v.Confidence != 0.9 || v.Category != "gambling" {
		t.Errorf("verdict = %+v", v)
	}
	if !v.Reachable {
		t.Error("page was served, verdict should be reachable")
	}
	if !outcome.Content.Fetched {
		t.Error("content summary should be fetched")
	}
}

func TestJudgeDefaultsConfidence(t *testing.T) {
	chat := &mockChat{response: `{"score":40,"category":"unknown","reasons":[]}`}
	judge, srv := newTestJudge(t, chat, "<html><body>hi</body></html>")

	v := judge.Judge(context.Background(), srv.URL, "example.org").Verdict
	if v.Confidence != 0.8 {
		t.Errorf("confidence = %v, want default 0.8", v.Confidence)
	}
}

func TestJudgeNeutralFallbackOnError(t *testing.T) {
	chat := &mockChat{err: errors.New("endpoint down")}
	judge, srv := newTestJudge(t, chat, "<html><body>hi</body></html>")

	v := judge.Judge(context.Background(), srv.URL, "example.org").Verdict
	if v.Score != 50 {
		t.Errorf("score = %d, want neutral 50", v.Score)
	}
	if v.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", v.Confidence)
	}
	if v.Category != "unknown" {
		t.Errorf("category = %q, want unknown", v.Category)
	}
	if len(v.Reasons) != 1 {
		t.Errorf("reasons = %v, want single diagnostic", v.Reasons)
	}
}

func TestJudgeNeutralFallbackOnGarbage(t *testing.T) {
	chat := &mockChat{response: "I refuse to answer in JSON."}
	judge, srv := newTestJudge(t, chat, "<html><body>hi</body></html>")

	v := judge.Judge(context.Background(), srv.URL, "example.org").Verdict
	if v.Score != 50 || v.Confidence != 0 {
		t.Errorf("verdict = %+v, want neutral fallback", v)
	}
}

func TestJudgeUnreachableTarget(t *testing.T) {
	chat := &mockChat{response: `{"score":70,"category":"gambling","reasons":["dead gambling domain"]}`}
	judge, srv := newTestJudge(t, chat, "")

	v := judge.Judge(context.Background(), srv.URL, "example.org").Verdict
	if v.Reachable {
		t.Error("503 target must be reported unreachable")
	}
	if v.Score != 70 {
		t.Errorf("score = %d, want 70", v.Score)
	}
}

func TestJudgeCachesPerURL(t *testing.T) {
	chat := &mockChat{response: `{"score":20,"category":"legitimate","reasons":[]}`}
	judge, srv := newTestJudge(t, chat, "<html><body>hi</body></html>")

	first := judge.Judge(context.Background(), srv.URL, "example.org")
	second := judge.Judge(context.Background(), srv.URL, "example.org")
	if chat.calls != 1 {
		t.Errorf("inference called %d times, want 1", chat.calls)
	}
	if first.Verdict.Score != second.Verdict.Score {
		t.Error("cached verdict differs")
	}
}

func TestJudgePromptIncludesContent(t *testing.T) {
	var seen string
	chat := chatFunc(func(_ context.Context, msgs []Message) (string, error) {
		seen = msgs[0].Content.(string)
		return `{"score":0,"category":"legitimate","reasons":[]}`, nil
	})
	judge, srv := newTestJudge(t, chat, "<html><head><title>Shop ABC</title></head><body>hang chinh hang</body></html>")

	judge.Judge(context.Background(), srv.URL, "example.org")
	if !strings.Contains(seen, "Shop ABC") {
		t.Errorf("prompt missing page title:\n%s", seen)
	}
	if !strings.Contains(seen, "example.org") {
		t.Error("prompt missing domain")
	}
}

type chatFunc func(ctx context.Context, msgs []Message) (string, error)

func (f chatFunc) Chat(ctx context.Context, msgs []Message) (string, error) { return f(ctx, msgs) }
