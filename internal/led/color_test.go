package led

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"green", Green, false},
		{"RED", Red, false},
		{"  Amber ", Amber, false},
		{"blue", Blue, false},
		{"white", White, false},
		{"off", Off, false},
		{"ok", Green, false},
		{"updates", Amber, false},
		{"error", Red, false},
		{"starting", Blue, false},
		{"test", White, false},
		{"purple", Off, true},
		{"", Off, true},
		{"   ", Off, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownColor) {
					t.Fatalf("ParseColor(%q) error = %v, want ErrUnknownColor", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorUint32(t *testing.T) {
	tests := []struct {
		color Color
		want  uint32
	}{
		{Green, 0x00ff00},
		{Amber, 0xffa500},
		{Red, 0xff0000},
		{Blue, 0x0000ff},
		{White, 0xffffff},
		{Off, 0x000000},
	}

	for _, tt := range tests {
		if got := tt.color.Uint32(); got != tt.want {
			t.Errorf("%s.Uint32() = %#06x, want %#06x", tt.color, got, tt.want)
		}
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Color{"color": Amber})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"color":"amber"}` {
		t.Errorf("Marshal = %s", data)
	}

	var decoded struct {
		Color Color `json:"color"`
	}
	if err := json.Unmarshal([]byte(`{"color":"Red"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Color != Red {
		t.Errorf("Unmarshal color = %v, want red", decoded.Color)
	}

	if err := json.Unmarshal([]byte(`{"color":"purple"}`), &decoded); err == nil {
		t.Error("Unmarshal of unknown color should fail")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 6 {
		t.Fatalf("Names() len = %d, want 6", len(names))
	}
	for _, name := range names {
		if _, err := ParseColor(name); err != nil {
			t.Errorf("Names() returned unparsable %q", name)
		}
	}
}

func TestScaleBrightness(t *testing.T) {
	tests := []struct {
		percent int
		want    uint8
	}{
		{0, 0},
		{1, 2},
		{50, 127},
		{100, 255},
		{150, 255},
	}

	for _, tt := range tests {
		if got := ScaleBrightness(tt.percent); got != tt.want {
			t.Errorf("ScaleBrightness(%d) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}
