package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ruleval/pkg/i18n"
)

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "de", "pt-BR", "uk"}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "en"},
		{"exact match", "de", "de"},
		{"case insensitive", "PT-br", "pt-br"},
		{"quality ordering", "de;q=0.5, uk;q=0.9", "uk"},
		{"exact before base", "de-AT, pt-BR;q=0.8", "pt-br"},
		{"base fallback", "de-AT, fr;q=0.9", "de"},
		{"zero quality excluded", "uk;q=0, de;q=0.1", "de"},
		{"malformed quality counts as one", "fr;q=2, uk;q=abc, de;q=0.9", "uk"},
		{"nothing matches", "ja, zh-CN", "en"},
		{"blank entries", " , ,de", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.ParseAcceptLanguage(tt.header, supported, "en"))
		})
	}

	t.Run("no supported languages", func(t *testing.T) {
		assert.Equal(t, "en", i18n.ParseAcceptLanguage("de", nil, "en"))
	})

	t.Run("oversized header is truncated", func(t *testing.T) {
		header := strings.Repeat("xx,", 2000) + "de"
		assert.Equal(t, "en", i18n.ParseAcceptLanguage(header, supported, "en"))
	})
}
