package config

type Backend string

const (
	// BackendFile writes a single framed dump file.
	BackendFile Backend = "file"

	// BackendBolt keeps records in a bbolt database.
	BackendBolt Backend = "bolt"
)

type PersistenceCfg struct {
	Backend Backend `yaml:"backend"`

	// Dir specifies the directory where dump files (or the bolt database) are stored.
	// It is created when missing.
	Dir string `yaml:"dir"`

	// Name defines the base name of the dump file, or the bolt database file and bucket.
	Name string `yaml:"name"`

	// Gzip enables gzip compression for file dumps. Ignored by the bolt backend.
	Gzip bool `yaml:"gzip"`

	// Crc32Control enables per-record checksums for file dumps.
	Crc32Control bool `yaml:"crc32_control"`

	// LoadOnStart restores the last snapshot while constructing the cache.
	LoadOnStart bool `yaml:"load_on_start"`

	// DumpOnClose saves a snapshot when the cache is closed.
	DumpOnClose bool `yaml:"dump_on_close"`
}

func (cfg *PersistenceCfg) Enabled() bool {
	return cfg != nil
}
