package config

const (
	// MaxContainerNameLength is the maximum length for container names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxContainerNameLength = 255

	// MaxOwnerNameLength is the maximum length for user and guild
	// display names. Same bound as container names for consistency.
	MaxOwnerNameLength = 255

	// MaxItemNameLength is the maximum length for catalog item names.
	MaxItemNameLength = 255

	// MaxNoteLength is the maximum length for a placed item's note.
	// Notes are freeform flavor text, not documents.
	MaxNoteLength = 1000
)
