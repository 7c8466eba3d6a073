package docgen

import (
	"context"
	"testing"

	"sync-documenter/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDocument_Publish(t *testing.T) {
	doc := &Document{Title: "Comparison", Body: "<p>x</p>"}

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "snapshots", "reports/latest.html",
		mock.Anything, mock.Anything, mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "text/html"
		})).
		Return(minio.UploadInfo{Bucket: "snapshots", Key: "reports/latest.html"}, nil)

	err := doc.Publish(context.Background(), client, "snapshots", "reports/latest.html")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestDocument_PublishError(t *testing.T) {
	doc := &Document{Title: "Comparison"}

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "snapshots", "reports/latest.html",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	err := doc.Publish(context.Background(), client, "snapshots", "reports/latest.html")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reports/latest.html")
}
