package content_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/geocoder89/portfolio/internal/domain/content"
)

func TestResponsibilitiesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{name: "nil_becomes_empty", items: nil, want: []string{}},
		{name: "empty", items: []string{}, want: []string{}},
		{name: "plain", items: []string{"Led the migration", "Built CI"}, want: []string{"Led the migration", "Built CI"}},
		{name: "quotes_and_unicode", items: []string{`said "hi"`, "naïve ✓", ""}, want: []string{`said "hi"`, "naïve ✓", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := content.EncodeResponsibilities(tt.items)

			got, err := content.DecodeResponsibilities(raw)
			if err != nil {
				t.Fatalf("decode %q: %v", raw, err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeResponsibilities_Malformed(t *testing.T) {
	got, err := content.DecodeResponsibilities(`{"not": "a list"`)

	if !errors.Is(err, content.ErrMalformedResponsibilities) {
		t.Fatalf("expected ErrMalformedResponsibilities, got %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("expected empty list on error, got %#v", got)
	}

	if items := content.ResponsibilitiesOrEmpty("not json"); len(items) != 0 || items == nil {
		t.Fatalf("expected non-nil empty list, got %#v", items)
	}
}

func TestDecodeResponsibilities_EmptyColumn(t *testing.T) {
	for _, raw := range []string{"", "   ", "null"} {
		got, err := content.DecodeResponsibilities(raw)
		if err != nil {
			t.Fatalf("raw %q: unexpected error %v", raw, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("raw %q: got %#v, want empty list", raw, got)
		}
	}
}
