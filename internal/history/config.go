package history

// Config controls history persistence. The store is in-memory unless
// Persist is set.
type Config struct {
	Persist bool   `yaml:"persist"`
	DBPath  string `yaml:"db_path"`
}

func DefaultConfig() Config {
	return Config{
		Persist: false,
		DBPath:  "~/.inspectra/history.db",
	}
}
