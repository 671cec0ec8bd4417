package ports

// Server defines the interface for the transport layer exposing the
// scoring service to the outside world
type Server interface {
	// Start starts serving requests
	Start() error

	// Stop shuts the server down
	Stop() error
}
