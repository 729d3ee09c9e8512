package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Upstream.Site != "MLB" {
		t.Errorf("Site = %q", cfg.Upstream.Site)
	}
	if cfg.Proxy.Enabled() {
		t.Error("proxy enabled without ML_PROXY_URL")
	}
	if cfg.SEO.Model != "gemini-1.5-flash" {
		t.Errorf("Model = %q", cfg.SEO.Model)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ECOM_PORT", "9090")
	t.Setenv("ML_PROXY_URL", "  https://api.zenrows.com/v1/?apikey=K&url=  ")
	t.Setenv("ML_PROXY_EXTRA", "&js_render=false")
	t.Setenv("ECOM_FETCH_TIMEOUT", "15s")
	t.Setenv("ECOM_OUTBOUND_RPS", "2.5")
	t.Setenv("ECOM_LOCAL_RENDER", "true")

	cfg := Load()
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Proxy.Base != "https://api.zenrows.com/v1/?apikey=K&url=" {
		t.Errorf("proxy base not trimmed: %q", cfg.Proxy.Base)
	}
	if !cfg.Proxy.Enabled() {
		t.Error("proxy should be enabled")
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.OutboundRPS != 2.5 {
		t.Errorf("OutboundRPS = %v", cfg.Fetch.OutboundRPS)
	}
	if !cfg.Fetch.LocalRender {
		t.Error("LocalRender = false")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ECOM_PORT", "not-a-port")
	t.Setenv("ECOM_FETCH_TIMEOUT", "soon")

	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default on malformed value", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want default on malformed value", cfg.Fetch.Timeout)
	}
}
