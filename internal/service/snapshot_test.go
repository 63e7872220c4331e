package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusapi/internal/storage"
	"campusapi/internal/storage/mocks"
)

func snapshotKey(prefix string) any {
	return mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, prefix) && strings.HasSuffix(key, ".json")
	})
}

func TestExportSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("exports all rows", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT \* FROM courses ORDER BY created_at ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code"}).
				AddRow("c1", "Mechanics", []byte("PHY101")).
				AddRow("c2", "Optics", []byte("PHY201")))

		store := new(mocks.MockStorage)
		store.On("Put", mock.Anything, snapshotKey("snapshots/courses/"), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		store.On("PresignGet", mock.Anything, snapshotKey("snapshots/courses/"), time.Hour).
			Return("https://minio.local/presigned", nil)

		snap, err := NewSnapshotService(db, store).Export(ctx, "course")

		require.NoError(t, err)
		assert.Equal(t, "course", snap.Resource)
		assert.Equal(t, 2, snap.Rows)
		assert.Equal(t, "https://minio.local/presigned", snap.URL)
		assert.True(t, strings.HasPrefix(snap.Key, "snapshots/courses/"))
		store.AssertExpectations(t)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("unknown resource", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		_, err = NewSnapshotService(db, new(mocks.MockStorage)).Export(ctx, "widgets")

		assert.ErrorIs(t, err, ErrUnknownResource)
	})

	t.Run("query failure", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT \* FROM universities`).
			WillReturnError(errors.New("relation does not exist"))

		_, err = NewSnapshotService(db, new(mocks.MockStorage)).Export(ctx, "university")

		assert.ErrorContains(t, err, "dump universities")
	})

	t.Run("upload failure", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT \* FROM departments`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d1"))

		store := new(mocks.MockStorage)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket gone"))

		_, err = NewSnapshotService(db, store).Export(ctx, "department")

		assert.ErrorContains(t, err, "upload snapshot")
	})

	t.Run("presign failure rolls the object back", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT \* FROM colleges`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))

		store := new(mocks.MockStorage)
		store.On("Put", mock.Anything, snapshotKey("snapshots/colleges/"), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		store.On("PresignGet", mock.Anything, mock.Anything, time.Hour).
			Return("", errors.New("sign error"))
		store.On("Delete", mock.Anything, snapshotKey("snapshots/colleges/")).
			Return(nil)

		_, err = NewSnapshotService(db, store).Export(ctx, "college")

		assert.ErrorContains(t, err, "presign snapshot")
		store.AssertExpectations(t)
	})
}
