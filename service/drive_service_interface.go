package service

import "catalogue-press/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListCoverFiles(folderID string) ([]models.CoverAsset, error)
	DownloadImage(fileID string) ([]byte, error)
}
