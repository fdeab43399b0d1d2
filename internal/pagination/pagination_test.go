package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/clients", nil)
	p := ParseParams(r)

	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Errorf("Expected defaults (%d, %d), got (%d, %d)", DefaultPage, DefaultLimit, p.Page, p.Limit)
	}
}

func TestParseParams_Explicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/clients?page=3&limit=50", nil)
	p := ParseParams(r)

	if p.Page != 3 || p.Limit != 50 {
		t.Errorf("Expected (3, 50), got (%d, %d)", p.Page, p.Limit)
	}
}

func TestParseParams_LimitCapped(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/clients?limit=5000", nil)
	p := ParseParams(r)

	if p.Limit != MaxLimit {
		t.Errorf("Expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestParseParams_InvalidIgnored(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/clients?page=-1&limit=abc", nil)
	p := ParseParams(r)

	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Errorf("Expected defaults for invalid input, got (%d, %d)", p.Page, p.Limit)
	}
}

func TestCalculateOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	if got := p.CalculateOffset(); got != 40 {
		t.Errorf("Expected offset 40, got %d", got)
	}
}

func TestCalculateMeta(t *testing.T) {
	p := Params{Page: 2, Limit: 20}
	meta := p.CalculateMeta(45)

	if meta.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrevious {
		t.Error("Page 2 of 3 should have both next and previous")
	}
}

func TestCalculateMeta_Empty(t *testing.T) {
	p := Params{Page: 1, Limit: 20}
	meta := p.CalculateMeta(0)

	if meta.TotalPages != 1 {
		t.Errorf("Expected 1 page for empty set, got %d", meta.TotalPages)
	}
	if meta.HasNext || meta.HasPrevious {
		t.Error("Single empty page should have neither next nor previous")
	}
}
