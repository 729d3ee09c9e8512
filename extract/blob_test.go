package extract

import "testing"

func TestBraceDelimited(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `{"a":1} trailing`, `{"a":1}`},
		{"nested", `{"a":{"b":2}} x`, `{"a":{"b":2}}`},
		{"brace inside string", `{"a":"}"} x`, `{"a":"}"}`},
		{"escaped quote in string", `{"a":"sa\"y}"} x`, `{"a":"sa\"y}"}`},
		{"truncated returns prefix", `{"a":{"b":`, `{"a":{"b":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := braceDelimited(tt.in); got != tt.want {
				t.Errorf("braceDelimited(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindStateBlob(t *testing.T) {
	body := `<script>window.__PRELOADED_STATE__ = {"k":"v"};</script>`
	if got := findStateBlob(body); got != `{"k":"v"}` {
		t.Errorf("findStateBlob() = %q", got)
	}

	// Later markers are tried when earlier ones are absent.
	body = `<script id="__NEXT_DATA__" type="application/json">{"props":{}}</script>`
	if got := findStateBlob(body); got != `{"props":{}}` {
		t.Errorf("findStateBlob() = %q", got)
	}

	if got := findStateBlob("<html>no blob here</html>"); got != "" {
		t.Errorf("findStateBlob() = %q, want empty", got)
	}

	// Marker with no opening brace after it.
	if got := findStateBlob("__PRELOADED_STATE__ is mentioned in prose only"); got != "" {
		t.Errorf("findStateBlob() = %q, want empty", got)
	}
}
