package domain

// AudioBundle is a named group of alternate recordings of the same text.
// Every word and every answer choice's question prompt references a bundle;
// the selection policy picks one recording per serve.
type AudioBundle struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AudioFile is a single recording inside a bundle. FilePath is relative to
// the configured audio directory.
type AudioFile struct {
	ID         int64  `json:"id"`
	BundleID   int64  `json:"bundle_id"`
	NarratorID int64  `json:"narrator_id"`
	FilePath   string `json:"file_path"`
	MimeType   string `json:"mime_type"`
}

// Narrator identifies the speaker of a recording. Narrators are created
// lazily when audio is uploaded; an empty name maps to "anonymous".
type Narrator struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
