// Package phoneme extracts and validates Japanese phoneme sequences used
// as the passphrase admissibility signal.
package phoneme

import "strings"

// filtered are the symbols pyopenjtalk-style G2P emits for pauses and the
// glottal stop that carry no phonetic-diversity information.
var filtered = map[string]struct{}{"pau": {}, "cl": {}}

// Sequence is a phoneme analysis result: an ordered list of phoneme
// symbols with the filler symbols already removed.
type Sequence []string

// Unique returns the set of distinct phoneme symbols in s.
func (s Sequence) Unique() map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for _, p := range s {
		out[p] = struct{}{}
	}
	return out
}

// UniqueCount returns the number of distinct phoneme symbols in s.
func (s Sequence) UniqueCount() int {
	return len(s.Unique())
}

// G2PEngine converts passphrase text into a raw phoneme symbol sequence.
// No concrete implementation ships in this package: grapheme-to-phoneme
// conversion for Japanese is an external collaborator the caller injects
// (pyopenjtalk and its derivatives have no Go binding).
type G2PEngine interface {
	Phonemize(text string) ([]string, error)
}

// Extract runs g2p over text and filters out non-phonetic filler symbols.
// Fails with ErrEmptyPassphrase iff text is empty or whitespace-only,
// without ever invoking g2p.
func Extract(g2p G2PEngine, text string) (Sequence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPassphrase
	}

	raw, err := g2p.Phonemize(text)
	if err != nil {
		return nil, err
	}
	out := make(Sequence, 0, len(raw))
	for _, p := range raw {
		if _, skip := filtered[p]; skip {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
