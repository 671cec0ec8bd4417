package ports

// Authorizer defines the interface consulted by the transport layer
// before privileged operations such as adding rules. The core performs
// no authorization of its own.
type Authorizer interface {
	// IsAuthorized reports whether the actor presenting the credential
	// may perform admin operations
	IsAuthorized(actor, credential string) bool
}
