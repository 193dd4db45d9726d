package ir

// Version constants for the IR encoding and the toolkit.
const (
	// EncodingVersion is the structural encoding schema version.
	EncodingVersion = "1"

	// ToolkitVersion is the abstrap toolkit version.
	ToolkitVersion = "0.1.0"
)
