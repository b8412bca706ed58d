package chi

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chiRouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/domain"
	healthuc "github.com/kailas-cloud/snipdex/internal/usecase/health"
	"github.com/kailas-cloud/snipdex/internal/usecase/retriever"
	"github.com/kailas-cloud/snipdex/internal/vectorizer/tfidf"
)

var serverSnippets = []domain.Snippet{
	{ID: "1", Title: "Machine Learning", Content: "Machine learning is a subset of artificial intelligence."},
	{ID: "2", Title: "Databases", Content: "Databases store structured data and answer queries."},
	{ID: "3", Title: "Networking", Content: "Networks move packets between hosts using protocols."},
}

func newTestRouter(t *testing.T, warm bool) chiRouter.Router {
	t.Helper()

	handle := retriever.NewHandle(func(ctx context.Context) (*retriever.Service, error) {
		return retriever.New(ctx, "tech_snippets", tfidf.New(), serverSnippets, nil)
	})
	if warm {
		if _, err := handle.Get(context.Background()); err != nil {
			t.Fatalf("build index: %v", err)
		}
	}

	srv := NewServer(handle, healthuc.New(handle, nil, nil), 3, 10, zap.NewNop())
	r := chiRouter.NewRouter()
	srv.Routes(r)
	return r
}

func doJSON(t *testing.T, r chiRouter.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, decoded
}

func TestQuery_OK(t *testing.T) {
	r := newTestRouter(t, true)

	rec, body := doJSON(t, r, http.MethodPost, "/query",
		`{"question": "What is machine learning?", "n_results": 2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["question"] != "What is machine learning?" {
		t.Errorf("question echoed as %v", body["question"])
	}
	results, ok := body["results"].([]any)
	if !ok || len(results) != 2 {
		t.Fatalf("results = %v", body["results"])
	}
	if body["total_results"].(float64) != 2 {
		t.Errorf("total_results = %v", body["total_results"])
	}

	first := results[0].(map[string]any)
	if first["id"] != "1" {
		t.Errorf("top result id = %v", first["id"])
	}
	content := first["content"].(string)
	if !strings.HasPrefix(content, "Machine Learning: ") {
		t.Errorf("content must be the searchable text, got %q", content)
	}

	// Scores and distances come back rounded to 4 decimals.
	for _, raw := range results {
		res := raw.(map[string]any)
		score := res["similarity_score"].(float64)
		dist := res["distance"].(float64)
		if math.Round(score*10000)/10000 != score {
			t.Errorf("score %v not rounded to 4 decimals", score)
		}
		if math.Round(dist*10000)/10000 != dist {
			t.Errorf("distance %v not rounded to 4 decimals", dist)
		}
	}
}

func TestQuery_DefaultNResults(t *testing.T) {
	r := newTestRouter(t, true)

	rec, body := doJSON(t, r, http.MethodPost, "/query", `{"question": "databases"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Default is 3 and the corpus has 3 documents.
	if body["total_results"].(float64) != 3 {
		t.Errorf("total_results = %v, want default 3", body["total_results"])
	}
}

func TestQuery_ValidationFailures(t *testing.T) {
	r := newTestRouter(t, true)

	cases := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed body", `{"question": `, codeBadRequest},
		{"zero n_results", `{"question": "ml", "n_results": 0}`, codeValidationFailed},
		{"negative n_results", `{"question": "ml", "n_results": -1}`, codeValidationFailed},
		{"n_results above max", `{"question": "ml", "n_results": 11}`, codeValidationFailed},
		{"empty question", `{"question": ""}`, codeInvalidQuery},
		{"whitespace question", `{"question": "   "}`, codeInvalidQuery},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := doJSON(t, r, http.MethodPost, "/query", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if body["code"] != tc.wantCode {
				t.Errorf("code = %v, want %s", body["code"], tc.wantCode)
			}
		})
	}
}

func TestQuery_BeforeIndexReady(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := doJSON(t, r, http.MethodPost, "/query", `{"question": "machine learning"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["code"] != codeNotReady {
		t.Errorf("code = %v", body["code"])
	}
}

func TestHealth_Initializing(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := doJSON(t, r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "initializing" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["message"] != "retrieval engine not initialized yet" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestHealth_Ready(t *testing.T) {
	r := newTestRouter(t, true)

	rec, body := doJSON(t, r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["collection_size"].(float64) != float64(len(serverSnippets)) {
		t.Errorf("collection_size = %v", body["collection_size"])
	}
}

func TestCollectionInfo(t *testing.T) {
	r := newTestRouter(t, true)

	rec, body := doJSON(t, r, http.MethodGet, "/collection/info", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["collection_name"] != "tech_snippets" {
		t.Errorf("collection_name = %v", body["collection_name"])
	}
	if body["total_documents"].(float64) != float64(len(serverSnippets)) {
		t.Errorf("total_documents = %v", body["total_documents"])
	}
	if body["vector_dimensions"].(float64) <= 0 {
		t.Errorf("vector_dimensions = %v", body["vector_dimensions"])
	}
}

func TestCollectionSnippets(t *testing.T) {
	r := newTestRouter(t, true)

	rec, body := doJSON(t, r, http.MethodGet, "/collection/snippets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["total_snippets"].(float64) != float64(len(serverSnippets)) {
		t.Errorf("total_snippets = %v", body["total_snippets"])
	}
	snippets := body["snippets"].([]any)
	first := snippets[0].(map[string]any)
	if first["content"] != serverSnippets[0].SearchableText() {
		t.Errorf("snippet content = %v, want searchable text", first["content"])
	}
}

func TestCollectionEndpoints_BeforeIndexReady(t *testing.T) {
	r := newTestRouter(t, false)

	for _, path := range []string{"/collection/info", "/collection/snippets"} {
		rec, body := doJSON(t, r, http.MethodGet, path, "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d", path, rec.Code)
		}
		if body["code"] != codeNotReady {
			t.Errorf("%s code = %v", path, body["code"])
		}
	}
}

func TestRoot(t *testing.T) {
	r := newTestRouter(t, false)

	rec, body := doJSON(t, r, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["query"] != "/query" {
		t.Errorf("directory entry = %v", body["query"])
	}
}

func TestRound4(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.123449, 0.1234},
		{0.123451, 0.1235},
		{1, 1},
		{0, 0},
		{-0.00004, 0},
	}
	for _, tc := range cases {
		if got := round4(tc.in); got != tc.want {
			t.Errorf("round4(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
