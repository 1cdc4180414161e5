package models

// MediaAsset is a user-selected video held in memory for the duration of
// one analysis. It is created at selection time and discarded on reset or
// replacement; nothing is persisted.
type MediaAsset struct {
	Name         string
	Size         int64
	DeclaredType string // MIME type as reported by the client, may be empty
	ResolvedType string // never empty once built by media.NewAsset
	Data         []byte
}
