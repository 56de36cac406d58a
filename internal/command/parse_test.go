package command

import (
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{":help", ShowHelp{}},
		{"h", ShowHelp{}},
		{"opt", ShowOptions{}},
		{"list", ListKeys{Category: keyring.Public}},
		{"ls sec", ListKeys{Category: keyring.Secret}},
		{"import a.asc b.asc", ImportKeys{Paths: []string{"a.asc", "b.asc"}}},
		{"rcv 0xABCD", ImportKeys{Paths: []string{"0xABCD"}, Receive: true}},
		{"export", ExportKeys{Category: keyring.Public, Patterns: []string{}}},
		{"exp sec 0xABCD", ExportKeys{Category: keyring.Secret, Patterns: []string{"0xABCD"}}},
		{"export 0xABCD", ExportKeys{Category: keyring.Public, Patterns: []string{"0xABCD"}}},
		{"del sec 0xABCD", DeleteKey{Category: keyring.Secret, ID: "0xABCD"}},
		{"send 0xABCD", SendKey{ID: "0xABCD"}},
		{"edit 0xABCD", EditKey{ID: "0xABCD"}},
		{"sign 0xABCD", SignKey{ID: "0xABCD"}},
		{"gen", GenerateKey{}},
		{"refresh", Refresh{}},
		{"refresh keys", RefreshKeys{}},
		{"t", ToggleDetail{}},
		{"toggle all", ToggleDetail{All: true}},
		{"scroll down", Scroll{Direction: DirectionDown, Amount: 1}},
		{"scroll row up 3", Scroll{Direction: DirectionUp, Amount: 3, Row: true}},
		{"set armor true", Set{Option: "armor", Value: "true"}},
		{"s Prompt :import ", Set{Option: "prompt", Value: ":import"}},
		{"set", Set{}},
		{"g mode", Get{Option: "mode"}},
		{"get", Get{}},
		{"m v", SwitchMode{Mode: ModeVisual}},
		{"copy fpr", Copy{Target: TargetFingerprint}},
		{"c 2", Copy{Target: TargetRow2}},
		{"p", Paste{}},
		{"search alice bob", Search{Query: "alice bob"}},
		{"next", NextTab{}},
		{"prev", PreviousTab{}},
		{"input", EnableInput{}},
		{"q!", Quit{}},
		{"none", None{}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("  :  "); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := Parse("frobnicate"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
	for _, input := range []string{"list private", "delete", "send", "mode", "mode fast", "copy", "copy everything", "scroll", "scroll sideways", "scroll up zero"} {
		if _, err := Parse(input); err == nil {
			t.Fatalf("expected Parse(%q) to fail", input)
		}
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{ListKeys{Category: keyring.Secret}, "list secret keys"},
		{ExportKeys{Category: keyring.Public}, "export all public keys"},
		{Confirm{Command: DeleteKey{Category: keyring.Public, ID: "0xABCD"}}, "delete public key 0xABCD"},
		{Set{Option: "prompt", Value: ":receive "}, "receive key(s) from the keyserver"},
		{Set{Option: "armor", Value: "false"}, "disable armored output"},
		{SwitchMode{Mode: ModeVisual}, "switch to visual mode"},
		{Copy{Target: TargetKey}, "copy exported key"},
		{Scroll{Direction: DirectionDown, Amount: 5, Row: true}, "scroll row down 5"},
		{Confirm{}, "confirm"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Fatalf("label of %#v = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestModeBanner(t *testing.T) {
	if ModeCopy.String() != "-- COPY --" || ModeNormal.String() != "-- NORMAL --" {
		t.Fatalf("unexpected banners %q %q", ModeCopy, ModeNormal)
	}
}
