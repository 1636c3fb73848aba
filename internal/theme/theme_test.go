package theme

import "testing"

func TestParseAndToggle(t *testing.T) {
	for raw, want := range map[string]Name{"dark": Dark, " Light ": Light, "DARK": Dark} {
		got, err := Parse(raw)
		if err != nil || got != want {
			t.Fatalf("Parse(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := Parse("solarized"); err == nil {
		t.Fatal("expected an error for an unknown theme")
	}
	if Dark.Toggle() != Light || Light.Toggle() != Dark || Name("").Toggle() != Light {
		t.Fatal("toggle should flip between dark and light")
	}
}

func TestForPicksPalette(t *testing.T) {
	if For(Dark) != Default() || For("") != Default() {
		t.Fatal("dark and unknown names should share the default set")
	}
	light := For(Light)
	if light == Default() {
		t.Fatal("light should have its own style set")
	}
	if got := light.Word.GetForeground(); got != lightPalette.strong {
		t.Fatalf("light word colour = %v", got)
	}
	if got := Default().Word.GetForeground(); got != darkPalette.strong {
		t.Fatalf("dark word colour = %v", got)
	}
}
