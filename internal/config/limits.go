package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectNameLength = 255

	// MaxSlugLength is the maximum length for project slugs.
	MaxSlugLength = 100

	// MaxUsernameLength is the maximum length for usernames.
	MaxUsernameLength = 64

	// MaxRequestBodyBytes caps JSON request bodies, file trees included.
	MaxRequestBodyBytes = 10 << 20
)
