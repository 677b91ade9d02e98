package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Incident() IncidentRepository

	// Close releases backend resources
	Close() error
}
