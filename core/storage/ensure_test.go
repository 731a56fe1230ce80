package storage_test

import (
	"context"
	"errors"
	"testing"

	"releasedrop/core/storage"
	"releasedrop/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		c := new(mocks.Client)
		c.On("BucketExists", ctx, "reports").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(ctx, c, "reports", ""))
		c.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		c := new(mocks.Client)
		c.On("BucketExists", ctx, "reports").Return(false, nil)
		c.On("MakeBucket", ctx, "reports", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(ctx, c, "reports", "us-east-1"))
		c.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		c := new(mocks.Client)
		c.On("BucketExists", ctx, "reports").Return(false, errors.New("access denied"))

		err := storage.EnsureBucket(ctx, c, "reports", "")
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("CreateFails", func(t *testing.T) {
		c := new(mocks.Client)
		c.On("BucketExists", ctx, "reports").Return(false, nil)
		c.On("MakeBucket", ctx, "reports", mock.Anything).Return(errors.New("quota"))

		err := storage.EnsureBucket(ctx, c, "reports", "")
		assert.ErrorContains(t, err, "create bucket reports")
	})
}
