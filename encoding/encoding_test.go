package encoding

import "testing"

// mislabeled embeds UTF8 but reports a different code page. Classification
// must follow the reported values, not the concrete type.
type mislabeled struct {
	UTF8
}

func (mislabeled) CodePage() int { return 1252 }

// relabeled embeds UTF8 and overrides nothing, so it still reports the
// UTF-8 code page and must classify exactly like UTF8.
type relabeled struct {
	UTF8
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		enc      Encoding
		wantFast bool
		wantMax  int
	}{
		{
			name:     "default",
			enc:      Default(),
			wantFast: true,
			wantMax:  3,
		},
		{
			name:     "utf8 throw",
			enc:      NewUTF8(Throw),
			wantFast: true,
			wantMax:  3,
		},
		{
			name:     "utf8 one byte replacement",
			enc:      NewUTF8(ReplaceWith("?")),
			wantFast: true,
			wantMax:  3,
		},
		{
			name:     "utf8 two byte replacement",
			enc:      NewUTF8(ReplaceWith("!?")),
			wantFast: false,
			wantMax:  3,
		},
		{
			name:     "utf8 replacement char",
			enc:      NewUTF8(ReplaceWith("�")),
			wantFast: false,
			wantMax:  3,
		},
		{
			name:     "utf8 wide replacement",
			enc:      NewUTF8(ReplaceWith("[invalid]")),
			wantFast: false,
			wantMax:  9,
		},
		{
			name:     "wrong code page same type",
			enc:      mislabeled{UTF8: NewUTF8(Throw)},
			wantFast: false,
			wantMax:  3,
		},
		{
			name:     "embedding preserving code page",
			enc:      relabeled{UTF8: NewUTF8(Throw)},
			wantFast: true,
			wantMax:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := Classify(tt.enc)
			if prof.FastUTF8 != tt.wantFast {
				t.Errorf("FastUTF8 = %v, want %v", prof.FastUTF8, tt.wantFast)
			}
			if prof.MaxBytesPerUnit != tt.wantMax {
				t.Errorf("MaxBytesPerUnit = %d, want %d", prof.MaxBytesPerUnit, tt.wantMax)
			}
			if prof.Fallback != tt.enc.Fallback() {
				t.Errorf("Fallback = %+v, want %+v", prof.Fallback, tt.enc.Fallback())
			}
		})
	}
}

func TestFallbackEncodedLen(t *testing.T) {
	tests := []struct {
		name string
		fb   Fallback
		want int
	}{
		{"throw", Throw, 0},
		{"empty replacement", ReplaceWith(""), 0},
		{"question mark", ReplaceWith("?"), 1},
		{"replacement char", ReplaceWith("�"), 3},
		{"multi char", ReplaceWith("??"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fb.EncodedLen(); got != tt.want {
				t.Errorf("EncodedLen() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFallbackZeroValueThrows(t *testing.T) {
	var fb Fallback
	if fb.Policy != FallbackThrow {
		t.Errorf("zero value Policy = %v, want FallbackThrow", fb.Policy)
	}
}
