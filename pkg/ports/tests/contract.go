package tests

import (
	"context"
	"testing"

	"github.com/aretw0/kinetree/pkg/ports"
)

// TemplateLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.TemplateLoader.
// wantSegments lists the segment names expected for source, in insertion order.
func TemplateLoaderContractTest(t *testing.T, loader ports.TemplateLoader, source string, wantSegments []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadTemplate_Success", func(t *testing.T) {
		tpl, err := loader.LoadTemplate(ctx, source)
		if err != nil {
			t.Fatalf("unexpected error loading %s: %v", source, err)
		}
		got := tpl.Names()
		if len(got) != len(wantSegments) {
			t.Fatalf("expected segments %v, got %v", wantSegments, got)
		}
		for i := range got {
			if got[i] != wantSegments[i] {
				t.Errorf("segment %d: expected %s, got %s", i, wantSegments[i], got[i])
			}
		}
	})

	t.Run("LoadTemplate_Independent", func(t *testing.T) {
		a, err := loader.LoadTemplate(ctx, source)
		if err != nil {
			t.Fatal(err)
		}
		b, err := loader.LoadTemplate(ctx, source)
		if err != nil {
			t.Fatal(err)
		}
		if len(wantSegments) == 0 {
			return
		}
		a.Remove(wantSegments[0])
		if b.Len() != len(wantSegments) {
			t.Errorf("loads must not share templates: removing from one changed the other")
		}
	})

	t.Run("LoadTemplate_NotFound", func(t *testing.T) {
		if _, err := loader.LoadTemplate(ctx, source+"-missing"); err == nil {
			t.Error("expected error for missing template, got nil")
		}
	})
}
