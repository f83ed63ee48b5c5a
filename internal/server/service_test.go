package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wealthyways/wealthyways/internal/advisor"
	"github.com/wealthyways/wealthyways/internal/classifier"
	"github.com/wealthyways/wealthyways/internal/config"
	"github.com/wealthyways/wealthyways/internal/store"
)

type stubModel string

func (m stubModel) Predict(advisor.Snapshot) (string, error) { return string(m), nil }

func bundledModel(t *testing.T) *classifier.Model {
	t.Helper()
	m, err := classifier.Load(filepath.Join("..", "..", config.DefaultModelPath))
	if err != nil {
		t.Fatalf("loading bundled model: %v", err)
	}
	return m
}

func newTestServer(t *testing.T, model advisor.Classifier, history *store.History) (*Service, *httptest.Server) {
	t.Helper()
	s := New(Config{Model: classifier.Info{Path: "m.json"}}, model, history)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, stubModel("Basic Saving"), nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, stubModel("Basic Saving"), nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz = %d %v", resp.StatusCode, body)
	}
}

func TestEvaluate_BundledModel(t *testing.T) {
	s, ts := newTestServer(t, bundledModel(t), nil)

	resp := post(t, ts.URL+"/v1/evaluate", `{"income":50000,"expenses":30000,"savings":10000,"debt":0}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Category != advisor.BasicSaving {
		t.Errorf("category = %s, want Basic Saving", got.Category)
	}
	if got.Tier != advisor.TierSteady {
		t.Errorf("tier = %s, want steady", got.Tier)
	}
	if got.Message != advisor.BasicSaving.Advice() {
		t.Errorf("advice = %q", got.Message)
	}
	if got.ID != "" {
		t.Errorf("id = %q, want empty without history", got.ID)
	}

	st := s.status()
	if st.Evaluations != 1 || st.EventCount != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestEvaluate_InvalidInput(t *testing.T) {
	s, ts := newTestServer(t, stubModel("Basic Saving"), nil)

	for _, body := range []string{
		`{"income":-1}`,
		`{"income":1e13}`,
		`{"income":"lots"}`,
		`{"salary":100}`,
		`not json`,
	} {
		resp := post(t, ts.URL+"/v1/evaluate", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, resp.StatusCode)
		}
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			t.Errorf("%s: error body = %+v (%v)", body, e, err)
		}
	}

	if st := s.status(); st.Rejected != 5 || st.Evaluations != 0 {
		t.Errorf("status = %+v, want 5 rejected", st)
	}
}

func TestEvaluate_UnknownLabel(t *testing.T) {
	s, ts := newTestServer(t, stubModel("Buy Crypto"), nil)

	resp := post(t, ts.URL+"/v1/evaluate", `{"income":50000}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	if st := s.status(); !strings.Contains(st.LastError, "Buy Crypto") {
		t.Errorf("LastError = %q", st.LastError)
	}
}

func TestEvaluate_NoModel(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	resp := post(t, ts.URL+"/v1/evaluate", `{"income":50000}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestEvaluate_MethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t, stubModel("Basic Saving"), nil)

	resp, err := http.Get(ts.URL + "/v1/evaluate")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t, stubModel("Basic Saving"), nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/healthz"},
		{http.MethodPost, "/metrics"},
		{http.MethodPut, "/v1/evaluate"},
		{http.MethodPost, "/v1/history"},
		{http.MethodPost, "/v1/status"},
		{http.MethodDelete, "/v1/events"},
		{http.MethodPost, "/v1/stream"},
	}
	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tt.method, tt.path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want 405", tt.method, tt.path, resp.StatusCode)
		}
	}

	resp, err := http.Get(ts.URL + "/v1/nope")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /v1/nope: status = %d, want 404", resp.StatusCode)
	}
}

func TestEvaluate_TrailingData(t *testing.T) {
	s, ts := newTestServer(t, stubModel("Basic Saving"), nil)

	for _, body := range []string{
		`{"income":1}{"income":-5}`,
		`{"income":1} []`,
		`{"income":1} x`,
	} {
		resp := post(t, ts.URL+"/v1/evaluate", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, resp.StatusCode)
		}
	}
	if st := s.status(); st.Rejected != 3 || st.Evaluations != 0 {
		t.Errorf("status = %+v, want 3 rejected", st)
	}

	resp := post(t, ts.URL+"/v1/evaluate", "{\"income\":50000}\n")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("trailing newline: status = %d, want 200", resp.StatusCode)
	}
}

func TestHistory(t *testing.T) {
	h, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	_, ts := newTestServer(t, stubModel("Emergency Mode"), h)

	for i := 0; i < 3; i++ {
		resp := post(t, ts.URL+"/v1/evaluate", `{"income":20000,"expenses":25000,"debt":60000}`)
		var got evaluateResponse
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got.ID == "" {
			t.Fatal("expected a history ID")
		}
	}

	resp, err := http.Get(ts.URL + "/v1/history?limit=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var records []store.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("history len = %d, want 2", len(records))
	}
	if records[0].Category != advisor.EmergencyMode || records[0].ModelPath != "m.json" {
		t.Errorf("record = %+v", records[0])
	}

	bad, err := http.Get(ts.URL + "/v1/history?limit=zero")
	if err != nil {
		t.Fatal(err)
	}
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", bad.StatusCode)
	}
}

func TestHistory_DisabledIsEmptyList(t *testing.T) {
	_, ts := newTestServer(t, stubModel("Basic Saving"), nil)

	resp, err := http.Get(ts.URL + "/v1/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || string(raw) != "[]" {
		t.Fatalf("history = %d %s, want 200 []", resp.StatusCode, raw)
	}
}

func TestMetrics(t *testing.T) {
	_, ts := newTestServer(t, stubModel("Investment Ready"), nil)

	post(t, ts.URL+"/v1/evaluate", `{"income":100000,"savings":40000}`)
	post(t, ts.URL+"/v1/evaluate", `{"income":-5}`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var b strings.Builder
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteString("\n")
	}
	out := b.String()

	for _, want := range []string{
		`wealthyways_evaluations_total{category="Investment Ready",tier="secure"} 1`,
		`wealthyways_rejected_inputs_total 1`,
		`wealthyways_saving_score_count 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestStream_ReceivesEvaluation(t *testing.T) {
	_, ts := newTestServer(t, stubModel("Cut Expenses"), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	// The hello frame confirms the subscription is registered.
	for sc.Scan() && sc.Text() != "event: hello" {
	}

	post(t, ts.URL+"/v1/evaluate", `{"income":60000,"expenses":55000,"savings":1000}`)

	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatal(err)
		}
		if ev.Type == "hello" {
			continue
		}
		if ev.Type != "evaluation" || ev.Category != advisor.CutExpenses {
			t.Fatalf("event = %+v", ev)
		}
		return
	}
	t.Fatalf("stream ended without an evaluation event: %v", sc.Err())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(Config{}, stubModel("Basic Saving"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	_ = resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
