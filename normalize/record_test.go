package normalize

import (
	"testing"

	"github.com/Johnpittz/ecom/models"
)

func TestIsNoiseTitle(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Patrocinado", true},
		{"  PUBLICIDADE  ", true},
		{"Buscas relacionadas", true},
		{"Perguntas relacionadas", true},
		{"Resumo", true},
		{"iPhone 13 128GB", false},
		{"Anúncio de iPhone", false}, // equality, not substring
		{"", false},
	}
	for _, tt := range tests {
		if got := IsNoiseTitle(tt.in); got != tt.want {
			t.Errorf("IsNoiseTitle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawRecord
		want models.ProductRecord
		ok   bool
	}{
		{
			name: "full record",
			raw: models.RawRecord{
				Title:     " iPhone 13 128GB ",
				PriceText: "R$ 3.500",
				Link:      `https:\/\/produto.mercadolivre.com.br\/MLB-123-iphone`,
				Thumbnail: "https://http2.mlstatic.com/D_1-O.jpg",
			},
			want: models.ProductRecord{
				Title:     "iPhone 13 128GB",
				Price:     intPtr(3500),
				Link:      "https://produto.mercadolivre.com.br/MLB-123-iphone",
				Thumbnail: "https://http2.mlstatic.com/D_1-O.jpg",
			},
			ok: true,
		},
		{
			name: "missing price keeps record",
			raw: models.RawRecord{
				Title: "Capa de celular",
				Link:  "https://produto.mercadolivre.com.br/MLB-9",
			},
			want: models.ProductRecord{
				Title: "Capa de celular",
				Link:  "https://produto.mercadolivre.com.br/MLB-9",
			},
			ok: true,
		},
		{
			name: "noise title rejected",
			raw:  models.RawRecord{Title: "Patrocinado", Link: "https://produto.mercadolivre.com.br/MLB-1"},
		},
		{
			name: "empty title rejected",
			raw:  models.RawRecord{Title: "   ", Link: "https://produto.mercadolivre.com.br/MLB-1"},
		},
		{
			name: "listing link rejected",
			raw:  models.RawRecord{Title: "Celular", Link: "https://lista.mercadolivre.com.br/celular"},
		},
		{
			name: "foreign host rejected",
			raw:  models.RawRecord{Title: "Celular", Link: "https://example.com/MLB-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Record() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Title != tt.want.Title || got.Link != tt.want.Link || got.Thumbnail != tt.want.Thumbnail {
				t.Errorf("Record() = %+v, want %+v", got, tt.want)
			}
			switch {
			case tt.want.Price == nil && got.Price != nil:
				t.Errorf("Record() price = %d, want nil", *got.Price)
			case tt.want.Price != nil && got.Price == nil:
				t.Errorf("Record() price = nil, want %d", *tt.want.Price)
			case tt.want.Price != nil && *got.Price != *tt.want.Price:
				t.Errorf("Record() price = %d, want %d", *got.Price, *tt.want.Price)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
