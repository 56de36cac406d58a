package theme

import "testing"

func TestParseColor(t *testing.T) {
	tests := map[string]string{
		"red":     "#d75f5f",
		" Blue ":  "#5f87d7",
		"#ff0000": "#ff0000",
		"00ff00":  "#00ff00",
	}
	for input, want := range tests {
		c, err := ParseColor(input)
		if err != nil {
			t.Fatalf("ParseColor(%q) returned error: %v", input, err)
		}
		if c.Hex() != want {
			t.Fatalf("ParseColor(%q) = %s, want %s", input, c.Hex(), want)
		}
	}
	for _, input := range []string{"", "purpleish", "#12345"} {
		if _, err := ParseColor(input); err == nil {
			t.Fatalf("expected ParseColor(%q) to fail", input)
		}
	}
}

func TestNewKeepsAccent(t *testing.T) {
	accent, _ := ParseColor("green")
	for _, colored := range []bool{true, false} {
		styles := New(colored, accent)
		if styles.Accent.Hex() != "#87af5f" {
			t.Fatalf("expected accent to be kept, got %s", styles.Accent.Hex())
		}
		if styles.Selected == nil || styles.Failure == nil {
			t.Fatalf("expected every style to be set")
		}
	}
	if Default().Accent.Hex() != DefaultAccent {
		t.Fatalf("unexpected default accent %s", Default().Accent.Hex())
	}
}
