package imaging

import (
	"testing"
)

func TestRGBColor_Hex(t *testing.T) {
	tests := []struct {
		c    RGBColor
		want string
	}{
		{RGBColor{0, 0, 0}, "#000000"},
		{RGBColor{255, 255, 255}, "#ffffff"},
		{RGBColor{255, 0, 0}, "#ff0000"},
		{RGBColor{0xab, 0xcd, 0xef}, "#abcdef"},
		{RGBColor{1, 2, 3}, "#010203"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%+v.Hex(): got %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBColor
		wantErr bool
	}{
		{"#000000", RGBColor{}, false},
		{"#FF8000", RGBColor{255, 128, 0}, false},
		{"#abcdef", RGBColor{0xab, 0xcd, 0xef}, false},
		{"#f00", RGBColor{255, 0, 0}, false},
		{"", RGBColor{}, true},
		{"red", RGBColor{}, true},
		{"#12345", RGBColor{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsBackground(t *testing.T) {
	tests := []struct {
		name string
		c    RGBColor
		want bool
	}{
		{"white", RGBColor{255, 255, 255}, true},
		{"just above", RGBColor{241, 241, 241}, true},
		{"at threshold", RGBColor{240, 240, 240}, false},
		{"one channel at threshold", RGBColor{255, 240, 255}, false},
		{"black", RGBColor{0, 0, 0}, false},
		{"light red", RGBColor{255, 200, 200}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBackground(tt.c, 240); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorSum(t *testing.T) {
	var empty ColorSum
	if empty.Count() != 0 || empty.RGB() != (RGBColor{}) {
		t.Error("empty sum should be black with zero count")
	}
	if empty.AboveThreshold(0) {
		t.Error("empty sum must never be above threshold")
	}

	var s ColorSum
	for i := 0; i < 24; i++ {
		s.Add(RGBColor{255, 255, 255})
	}
	s.Add(RGBColor{255, 0, 0})

	r, g, b := s.Mean()
	if r != 255 || g != 244.8 || b != 244.8 {
		t.Errorf("mean: got %v %v %v, want 255 244.8 244.8", r, g, b)
	}
	if !s.AboveThreshold(240) {
		t.Error("mean 244.8 should be above 240")
	}
	if s.AboveThreshold(245) {
		t.Error("mean 244.8 should not be above 245")
	}
	if want := (RGBColor{255, 244, 244}); s.RGB() != want {
		t.Errorf("RGB: got %+v, want %+v (truncated)", s.RGB(), want)
	}
}
