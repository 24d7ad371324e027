package domain

import "fmt"

// Penalty is carried-forward debt in minutes.
type Penalty struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Duration  int    `json:"duration"`
	Completed bool   `json:"completed"`
}

// NewPenalty returns an open penalty.
func NewPenalty(id, label string, minutes int) Penalty {
	return Penalty{ID: id, Label: label, Duration: minutes}
}

// Resolve settles the whole penalty.
func (p *Penalty) Resolve() error {
	if p.Completed {
		return fmt.Errorf("resolving penalty %s: %w", p.ID, ErrPenaltyClosed)
	}
	p.Completed = true
	return nil
}

// Reduce pays off minutes of the penalty. Reducing to zero or below settles
// it with a zero duration.
func (p *Penalty) Reduce(minutes int) error {
	if minutes <= 0 {
		return ErrInvalidMinutes
	}
	if p.Completed {
		return fmt.Errorf("reducing penalty %s: %w", p.ID, ErrPenaltyClosed)
	}
	left := p.Duration - minutes
	if left <= 0 {
		p.Duration = 0
		p.Completed = true
		return nil
	}
	p.Duration = left
	return nil
}
