package models

// CoverAsset is one image file discovered in the cover-sync Drive folder,
// matched to a book handle by filename.
type CoverAsset struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	Handle      string `json:"handle"`
	Internal    int    `json:"internal"` // 0 = primary cover, 1..n = internals position
	ImageURL    string `json:"imageUrl"`
}
