package model

// SourceDoc is one ingested source document. Immutable once created;
// owned by the session it was ingested for.
type SourceDoc struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Content  string `json:"content"`
	IsDemo   bool   `json:"isDemo"`
}

// Chunk is a fixed-size text window cut from one source document.
// IDs are derived from the source ID and a 1-based sequence number,
// so re-chunking identical content yields identical IDs.
type Chunk struct {
	ID            string `json:"id"`
	SourceID      string `json:"sourceId"`
	Text          string `json:"text"`
	TokenEstimate int    `json:"tokenEstimate"`
}
