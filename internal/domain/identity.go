package domain

// Identity is the authenticated member as supplied by the external auth
// provider. A nil Identity means the request is anonymous; anonymous
// requesters own nothing.
type Identity struct {
	Email       string
	DisplayName string
	PhotoURL    string
}
