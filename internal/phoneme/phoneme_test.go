package phoneme

import "testing"

type fakeG2P struct {
	out []string
	err error
}

func (f fakeG2P) Phonemize(string) ([]string, error) { return f.out, f.err }

func TestExtract_filtersPauAndCl(t *testing.T) {
	g2p := fakeG2P{out: []string{"pau", "k", "o", "N", "cl", "n", "i", "ch", "i", "pau"}}
	got, err := Extract(g2p, "こんにちは")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := Sequence{"k", "o", "N", "n", "i", "ch", "i"}
	if len(got) != len(want) {
		t.Fatalf("Extract() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Extract()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtract_emptyOrWhitespaceTextIsEmptyPassphrase(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		g2p := fakeG2P{out: []string{"k", "o"}}
		_, err := Extract(g2p, text)
		if err != ErrEmptyPassphrase {
			t.Errorf("Extract(%q) error = %v, want ErrEmptyPassphrase", text, err)
		}
	}
}

func TestSequence_UniqueCount(t *testing.T) {
	s := Sequence{"a", "i", "a", "u", "i"}
	if got := s.UniqueCount(); got != 3 {
		t.Errorf("UniqueCount() = %d, want 3", got)
	}
}

func TestCheckUnique(t *testing.T) {
	tests := []struct {
		name      string
		seq       Sequence
		minUnique int
		wantErr   bool
	}{
		{"sufficient", Sequence{"a", "i", "u", "e", "o"}, 5, false},
		{"insufficient", Sequence{"a", "i", "a"}, 5, true},
		{"exact boundary", Sequence{"a", "i", "u"}, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUnique(tt.seq, tt.minUnique)
			if tt.wantErr && err == nil {
				t.Error("CheckUnique() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CheckUnique() = %v, want nil", err)
			}
		})
	}
}

func TestCheckConsistency(t *testing.T) {
	t.Run("within threshold", func(t *testing.T) {
		samples := []Sequence{
			{"a", "i", "u", "e", "o"},
			{"a", "i", "u", "e", "o"},
			{"a", "i", "u", "e", "a"},
		}
		if err := CheckConsistency(samples, 0.3); err != nil {
			t.Errorf("CheckConsistency() = %v, want nil", err)
		}
	})

	t.Run("reports first offending pair", func(t *testing.T) {
		samples := []Sequence{
			{"a", "i", "u", "e", "o"},
			{"k", "a", "u", "e", "o"},
		}
		err := CheckConsistency(samples, 0.1)
		inconsistency, ok := err.(*ErrPhonemeInconsistency)
		if !ok {
			t.Fatalf("CheckConsistency() error type = %T, want *ErrPhonemeInconsistency", err)
		}
		if inconsistency.I != 0 || inconsistency.J != 1 {
			t.Errorf("indices = (%d,%d), want (0,1)", inconsistency.I, inconsistency.J)
		}
	})
}

func TestSelectReference(t *testing.T) {
	samples := []Sequence{
		{"a", "i", "u", "e", "o"},
		{"a", "i", "u", "e", "o"},
		{"a", "i", "u", "e", "a"},
	}
	got := SelectReference(samples)
	want := samples[0]
	if len(got) != len(want) {
		t.Fatalf("SelectReference() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SelectReference()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
