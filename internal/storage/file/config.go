package file

import "io/fs"

// DefaultExtension is the suffix ListBoards looks for
const DefaultExtension = ".board"

// FileMode is the permission set given to newly saved boards
const FileMode fs.FileMode = 0o644

// Config holds file storage configuration
type Config struct {
	// Dir is the base directory for relative board names. Empty means the
	// working directory.
	Dir string
	// Extension filters ListBoards
	Extension string
}

// DefaultConfig returns the default file storage configuration
func DefaultConfig() Config {
	return Config{
		Dir:       "",
		Extension: DefaultExtension,
	}
}
