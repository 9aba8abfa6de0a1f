package audio

import "fmt"

// ErrInsufficientDuration reports a PCM buffer shorter than policy allows.
type ErrInsufficientDuration struct {
	DurationSeconds float64
	MinSeconds      float64
}

func (e *ErrInsufficientDuration) Error() string {
	return fmt.Sprintf("insufficient speech duration: %.3fs < %.3fs", e.DurationSeconds, e.MinSeconds)
}

// Validate checks a PCM buffer is non-empty and at least minSeconds long.
func Validate(p PCM, minSeconds float64) error {
	if len(p.Samples) == 0 {
		return ErrEmpty
	}
	duration := p.Duration()
	if duration < minSeconds {
		return &ErrInsufficientDuration{DurationSeconds: duration, MinSeconds: minSeconds}
	}
	return nil
}
