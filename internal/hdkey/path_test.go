package hdkey

import "testing"

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		in   string
		want []uint32
	}{
		{"m", []uint32{}},
		{"m/0", []uint32{0}},
		{"m/0'", []uint32{HardenedOffset}},
		{"m/44'/60'/0'/0/1", []uint32{44 + HardenedOffset, 60 + HardenedOffset, HardenedOffset, 0, 1}},
		{"m/44h/0h/0h", []uint32{44 + HardenedOffset, HardenedOffset, HardenedOffset}},
	}
	for _, tt := range tests {
		got, err := ParseDerivationPath(tt.in)
		if err != nil {
			t.Errorf("ParseDerivationPath(%q): %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseDerivationPath(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseDerivationPath(%q)[%d] = %d, want %d", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseDerivationPathRejectsMalformed(t *testing.T) {
	for _, in := range []string{"m//0", "m/abc", "m/-1", "m/2147483648", "x/0", "m/0''"} {
		if _, err := ParseDerivationPath(in); err == nil {
			t.Errorf("ParseDerivationPath(%q) succeeded, want InvalidPath", in)
		}
	}
}

func TestFormatDerivationPathRoundTrips(t *testing.T) {
	for _, in := range []string{"m", "m/0", "m/44'/60'/0'/0/1"} {
		parsed, err := ParseDerivationPath(in)
		if err != nil {
			t.Fatalf("ParseDerivationPath(%q): %v", in, err)
		}
		if got := FormatDerivationPath(parsed); got != in {
			t.Errorf("FormatDerivationPath(parse(%q)) = %q", in, got)
		}
	}
}
