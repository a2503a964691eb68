package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const (
	EnvAccessKeyID     = "OBJECT_STORE_ACCESS_KEY_ID"
	EnvSecretAccessKey = "OBJECT_STORE_SECRET_ACCESS_KEY"
)

// Service 伴生对象存储客户端, 只用于读取提交的代码文本,
// 与判题 API 分属不同主机
type Service struct {
	client   *minio.Client
	log      loggerv2.Logger
	endpoint string
	bucket   string
}

func NewService(log loggerv2.Logger, endpoint string, useSSL bool, bucket string) *Service {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv(EnvAccessKeyID), os.Getenv(EnvSecretAccessKey), ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Error("Failed to create object store client", logger.Error(err))
		return nil
	}

	return &Service{
		client:   client,
		log:      log,
		endpoint: endpoint,
		bucket:   bucket,
	}
}

// FetchSubmissionText 读取提交代码文本. submission 可以是对象键,
// 也可以是上游下发的完整 URL
func (s *Service) FetchSubmissionText(ctx context.Context, submission string) (string, error) {
	objectKey := s.objectKey(submission)

	obj, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("get submission object %q: %w", objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("read submission object %q: %w", objectKey, err)
	}
	return string(data), nil
}

// GetPresignedDownloadURL 获取提交文本的预签名下载 URL
func (s *Service) GetPresignedDownloadURL(ctx context.Context, submission string, durationSeconds int) (string, error) {
	expiration := time.Duration(durationSeconds) * time.Second

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, s.objectKey(submission), expiration, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return presignedURL.String(), nil
}

func (s *Service) objectKey(submission string) string {
	u, err := url.Parse(submission)
	if err != nil || u.Path == "" {
		return submission
	}
	key := strings.TrimPrefix(u.Path, "/")
	key = strings.TrimPrefix(key, s.bucket+"/")
	return key
}
