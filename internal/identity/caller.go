package identity

// Caller is the verified identity a request acts as. The zero value is the
// anonymous caller.
type Caller struct {
	ID       string
	Email    string
	Metadata map[string]any
}

func Anonymous() Caller {
	return Caller{}
}

func (c Caller) IsAnonymous() bool {
	return c.ID == ""
}
