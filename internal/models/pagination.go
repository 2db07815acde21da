package models

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Page is skip/limit pagination as accepted by the list endpoints.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps p to a non-negative skip and a limit in [1, MaxPageLimit].
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}
