package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"marketadmin/internal/seeder"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockObjectClient struct {
	mock.Mock
	body []byte
}

func (m *MockObjectClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectClient) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucket, opts)
	return args.Error(0)
}

func (m *MockObjectClient) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	m.body, _ = io.ReadAll(reader)
	args := m.Called(ctx, bucket, key, size, opts.ContentType)
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, args.Error(0)
}

type ReportStoreTestSuite struct {
	suite.Suite
	client  *MockObjectClient
	store   *ReportStore
	summary *seeder.Summary
	ctx     context.Context
}

func (suite *ReportStoreTestSuite) SetupTest() {
	suite.client = &MockObjectClient{}
	suite.store = &ReportStore{client: suite.client, bucket: "reports"}
	started := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	suite.summary = &seeder.Summary{
		Backend:    "mongodb",
		Deleted:    154,
		Inserted:   154,
		Stored:     154,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
	}
	suite.ctx = context.Background()
}

func (suite *ReportStoreTestSuite) TearDownTest() {
	suite.client.AssertExpectations(suite.T())
}

func TestReportStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ReportStoreTestSuite))
}

func (suite *ReportStoreTestSuite) TestUpload_ExistingBucket() {
	key := "seed-reports/20260304T050607Z.json"
	suite.client.On("BucketExists", suite.ctx, "reports").Return(true, nil)
	suite.client.On("PutObject", suite.ctx, "reports", key, mock.AnythingOfType("int64"), "application/json").Return(nil)

	name, err := suite.store.Upload(suite.ctx, suite.summary)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), key, name)

	var decoded seeder.Summary
	assert.NoError(suite.T(), json.Unmarshal(suite.client.body, &decoded))
	assert.Equal(suite.T(), int64(154), decoded.Stored)
	assert.Equal(suite.T(), "mongodb", decoded.Backend)
}

func (suite *ReportStoreTestSuite) TestUpload_CreatesMissingBucket() {
	suite.client.On("BucketExists", suite.ctx, "reports").Return(false, nil)
	suite.client.On("MakeBucket", suite.ctx, "reports", minio.MakeBucketOptions{}).Return(nil)
	suite.client.On("PutObject", suite.ctx, "reports", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := suite.store.Upload(suite.ctx, suite.summary)
	assert.NoError(suite.T(), err)
}

func (suite *ReportStoreTestSuite) TestUpload_BucketCheckFails() {
	suite.client.On("BucketExists", suite.ctx, "reports").Return(false, errors.New("access denied"))

	_, err := suite.store.Upload(suite.ctx, suite.summary)
	assert.ErrorContains(suite.T(), err, "access denied")
}

func (suite *ReportStoreTestSuite) TestUpload_PutFails() {
	suite.client.On("BucketExists", suite.ctx, "reports").Return(true, nil)
	suite.client.On("PutObject", suite.ctx, "reports", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout"))

	_, err := suite.store.Upload(suite.ctx, suite.summary)
	assert.ErrorContains(suite.T(), err, "timeout")
}
