package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogue-press/models"
)

type fakeDrive struct {
	covers []models.CoverAsset
	err    error
}

func (f *fakeDrive) ListCoverFiles(folderID string) ([]models.CoverAsset, error) {
	return f.covers, f.err
}

func (f *fakeDrive) DownloadImage(fileID string) ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}

type fakeBookRepo struct {
	coverUpdates    map[string]string
	internalAppends map[string][]string
	failHandles     map[string]bool
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		coverUpdates:    make(map[string]string),
		internalAppends: make(map[string][]string),
		failHandles:     make(map[string]bool),
	}
}

func (f *fakeBookRepo) GetBooksForCatalog(ctx context.Context, vendor, tag string) ([]models.Book, error) {
	return nil, nil
}

func (f *fakeBookRepo) GetBookByHandle(ctx context.Context, handle string) (*models.Book, error) {
	return nil, fmt.Errorf("not found")
}

func (f *fakeBookRepo) UpdateCoverFile(ctx context.Context, handle, driveFileID string) error {
	if f.failHandles[handle] {
		return fmt.Errorf("no book with handle %s", handle)
	}
	f.coverUpdates[handle] = driveFileID
	return nil
}

func (f *fakeBookRepo) AppendInternalImage(ctx context.Context, handle, imageURL string) error {
	if f.failHandles[handle] {
		return fmt.Errorf("no book with handle %s", handle)
	}
	f.internalAppends[handle] = append(f.internalAppends[handle], imageURL)
	return nil
}

func TestSyncCovers(t *testing.T) {
	ctx := context.Background()

	t.Run("primary covers and internals are routed separately", func(t *testing.T) {
		drive := &fakeDrive{covers: []models.CoverAsset{
			{DriveFileID: "f1", FileName: "tides.jpg", Handle: "tides"},
			{DriveFileID: "f2", FileName: "tides_1.jpg", Handle: "tides", Internal: 1, ImageURL: "https://drive.google.com/uc?id=f2"},
			{DriveFileID: "f3", FileName: "harbor.png", Handle: "harbor"},
		}}
		repo := newFakeBookRepo()

		matched, skipped, errs, err := NewSyncService(drive, repo).SyncCovers(ctx, "folder-1")
		require.NoError(t, err)
		assert.Equal(t, 3, matched)
		assert.Equal(t, 0, skipped)
		assert.Empty(t, errs)

		assert.Equal(t, "f1", repo.coverUpdates["tides"])
		assert.Equal(t, "f3", repo.coverUpdates["harbor"])
		assert.Equal(t, []string{"https://drive.google.com/uc?id=f2"}, repo.internalAppends["tides"])
	})

	t.Run("unmatched files are skipped with per-file errors", func(t *testing.T) {
		drive := &fakeDrive{covers: []models.CoverAsset{
			{DriveFileID: "f1", FileName: "tides.jpg", Handle: "tides"},
			{DriveFileID: "f2", FileName: "ghost.jpg", Handle: "ghost"},
		}}
		repo := newFakeBookRepo()
		repo.failHandles["ghost"] = true

		matched, skipped, errs, err := NewSyncService(drive, repo).SyncCovers(ctx, "folder-1")
		require.NoError(t, err)
		assert.Equal(t, 1, matched)
		assert.Equal(t, 1, skipped)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "ghost.jpg")
	})

	t.Run("listing failure aborts the sync", func(t *testing.T) {
		drive := &fakeDrive{err: fmt.Errorf("drive unavailable")}
		repo := newFakeBookRepo()

		_, _, _, err := NewSyncService(drive, repo).SyncCovers(ctx, "folder-1")
		assert.Error(t, err)
	})
}
