package server

// Server bundles the entity-specific HTTP servers. The control server is
// the only one today.
type Server struct {
	ControlServer
}

func NewServer(
	controlServer ControlServer,
) Server {
	return Server{
		ControlServer: controlServer,
	}
}
