package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/detail"
	"github.com/Johnpittz/ecom/extract"
	"github.com/Johnpittz/ecom/fetch"
	"github.com/Johnpittz/ecom/proxy"
	"github.com/Johnpittz/ecom/retrieval"
	"github.com/Johnpittz/ecom/seo"
)

// newTestRouter wires the full stack against stub upstream origins, with no
// proxy and no generation credential.
func newTestRouter(searchAPIBase, listBase string) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Fetch:  config.FetchConfig{Timeout: 5 * time.Second},
		Upstream: config.UpstreamConfig{
			SearchAPIBase: searchAPIBase,
			ListBase:      listBase,
			Site:          "MLB",
		},
		SEO: config.SEOConfig{Model: "gemini-1.5-flash"},
	}

	fetcher := fetch.NewFetcher(cfg.Fetch)
	builder := proxy.NewBuilder(cfg.Proxy)
	apiStrategy := retrieval.NewAPIStrategy(fetcher, builder, cfg.Upstream)
	htmlStrategy := retrieval.NewHTMLStrategy(fetcher, nil, builder, cfg.Upstream)
	details := detail.NewService(fetcher, builder)
	seoClient := seo.NewClient(nil, cfg.SEO)

	return NewRouter(apiStrategy, htmlStrategy, extract.NewPipeline(), seoClient, details, cfg)
}

func doGET(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil && w.Body.Len() > 0 {
		// redirects and empty bodies are fine
		body = nil
	}
	return w, body
}

func TestHealth(t *testing.T) {
	r := newTestRouter("http://unused", "http://unused")
	w, body := doGET(t, r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["ok"] != true {
		t.Errorf("body = %v", body)
	}
}

func TestRootRedirectsToHealth(t *testing.T) {
	r := newTestRouter("http://unused", "http://unused")
	w, _ := doGET(t, r, "/")
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/health" {
		t.Errorf("Location = %q", loc)
	}
}

func TestDebugEnvMasksProxyBase(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Proxy: config.ProxyConfig{
			Base:  "https://api.zenrows.com/v1/?apikey=SECRETSECRET&url=",
			Extra: "&premium_proxy=true",
		},
		Fetch: config.FetchConfig{Timeout: time.Second},
	}
	fetcher := fetch.NewFetcher(cfg.Fetch)
	builder := proxy.NewBuilder(cfg.Proxy)
	r := NewRouter(
		retrieval.NewAPIStrategy(fetcher, builder, cfg.Upstream),
		retrieval.NewHTMLStrategy(fetcher, nil, builder, cfg.Upstream),
		extract.NewPipeline(),
		seo.NewClient(nil, cfg.SEO),
		detail.NewService(fetcher, builder),
		cfg,
	)

	w, body := doGET(t, r, "/debug/env")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["use_proxy"] != true {
		t.Errorf("use_proxy = %v", body["use_proxy"])
	}
	preview, _ := body["proxy_base_preview"].(string)
	if preview != "https://api."+"..." {
		t.Errorf("proxy_base_preview = %q", preview)
	}
	if strings.Contains(preview, "SECRET") {
		t.Errorf("preview leaks the key: %q", preview)
	}
	if body["proxy_extra"] != "&premium_proxy=true" {
		t.Errorf("proxy_extra = %v", body["proxy_extra"])
	}
}

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"iPhone 13","price":3500,"permalink":"https://produto.mercadolivre.com.br/MLB-1-iphone","thumbnail":"https://http2.mlstatic.com/1.jpg"}]}`))
	}))
	defer ts.Close()

	r := newTestRouter(ts.URL, "http://unused")
	w, body := doGET(t, r, "/meli/search?q=iphone")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["query"] != "iphone" {
		t.Errorf("query = %v", body["query"])
	}
	results, _ := body["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("results = %v", body["results"])
	}
	first, _ := results[0].(map[string]any)
	if first["title"] != "iPhone 13" {
		t.Errorf("title = %v", first["title"])
	}
	if price, _ := first["price"].(float64); price != 3500 {
		t.Errorf("price = %v", first["price"])
	}
	// No credential configured: the placeholder, never a failure.
	if body["seo_text"] != seo.DisabledPlaceholder {
		t.Errorf("seo_text = %v", body["seo_text"])
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	r := newTestRouter("http://unused", "http://unused")
	w, _ := doGET(t, r, "/meli/search")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearch_NonJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer ts.Close()

	r := newTestRouter(ts.URL, "http://unused")
	w, body := doGET(t, r, "/meli/search?q=iphone")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; upstream failures never surface as HTTP errors", w.Code)
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "not valid JSON") {
		t.Errorf("message = %q", msg)
	}
	if body["diagnostic"] == nil {
		t.Error("diagnostic missing")
	}
}

func TestSearch_UpstreamErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"forbidden"}`))
	}))
	defer ts.Close()

	r := newTestRouter(ts.URL, "http://unused")
	w, body := doGET(t, r, "/meli/search?q=iphone")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with diagnostic", w.Code)
	}
	diag, _ := body["diagnostic"].(map[string]any)
	if diag == nil {
		t.Fatal("diagnostic missing")
	}
	if status, _ := diag["status"].(float64); status != 403 {
		t.Errorf("diagnostic status = %v", diag["status"])
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer ts.Close()

	r := newTestRouter(ts.URL, "http://unused")
	w, body := doGET(t, r, "/meli/search?q=qwzx")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, has := body["meli_status"]; !has {
		t.Errorf("empty-results shape missing meli_status: %v", body)
	}
}

const searchPage = `<html><head>
<script type="application/ld+json">
{"@type":"ItemList","itemListElement":[{"item":{"name":"iPhone 13 128GB","url":"https://produto.mercadolivre.com.br/MLB-111-iphone","offers":{"price":3500}}}]}
</script>
</head><body></body></html>`

func TestSearchHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchPage))
	}))
	defer ts.Close()

	r := newTestRouter("http://unused", ts.URL)
	w, body := doGET(t, r, "/meli/search_html?q=iphone")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	results, _ := body["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("results = %v", body["results"])
	}
	if tries, _ := body["tries_count"].(float64); tries != 1 {
		t.Errorf("tries_count = %v, want 1 without a proxy", body["tries_count"])
	}
	if body["seo_text"] != seo.DisabledPlaceholder {
		t.Errorf("seo_text = %v", body["seo_text"])
	}
}

func TestSearchHTML_Unparseable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body><p>nada</p></body></html>"))
	}))
	defer ts.Close()

	r := newTestRouter("http://unused", ts.URL)
	w, body := doGET(t, r, "/meli/search_html?q=iphone")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with trace", w.Code)
	}
	tries, _ := body["tries"].([]any)
	if len(tries) != 1 {
		t.Fatalf("tries = %v", body["tries"])
	}
	preview, _ := body["html_preview"].(string)
	if !strings.Contains(preview, "nada") {
		t.Errorf("html_preview = %q", preview)
	}
}

func TestSearchHTML_FetchFailure(t *testing.T) {
	r := newTestRouter("http://unused", "http://127.0.0.1:1")
	w, body := doGET(t, r, "/meli/search_html?q=iphone")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with trace", w.Code)
	}
	if _, has := body["html_preview"]; has {
		t.Error("total fetch failure should not carry html_preview")
	}
	tries, _ := body["tries"].([]any)
	if len(tries) != 1 {
		t.Fatalf("tries = %v", body["tries"])
	}
}

func TestProduct_RejectsNonProductLink(t *testing.T) {
	r := newTestRouter("http://unused", "http://unused")
	w, _ := doGET(t, r, "/meli/product?url="+
		"https%3A%2F%2Flista.mercadolivre.com.br%2Fcelular")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a listing link", w.Code)
	}

	w, _ = doGET(t, r, "/meli/product")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing url", w.Code)
	}
}
