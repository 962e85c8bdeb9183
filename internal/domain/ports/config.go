package ports

// Configuration keys consumed by the sync engine.
const (
	ConfigRemoteToken  = "remote.token"
	ConfigRemoteID     = "remote.id"
	ConfigRemoteHandle = "remote.handle"
)

// ConfigStore is a dotted-key configuration store.
type ConfigStore interface {
	// Get returns the value for key as a string, or "" when unset.
	Get(key string) string

	// Set persists value under key. Dotted keys create nested tables.
	Set(key string, value any) error
}
