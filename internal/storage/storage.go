package storage

import (
	"fmt"
	"microblog-backend/config"
	"mime/multipart"
)

// Storage 是帖子图片附件的存储抽象。
// 本地实现返回相对路径，对象存储实现返回完整URL
type Storage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// New 根据配置选择存储后端
func New() (Storage, error) {
	cfg := config.AppConfig
	switch cfg.StorageBackend {
	case "local":
		return NewLocalStorage(cfg.LocalStoragePath)
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(cfg.GCSProjectID, cfg.GCSBucketName, cfg.GCSCredentialsFile)
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", cfg.StorageBackend)
	}
}
