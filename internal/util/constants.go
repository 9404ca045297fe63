package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 题图上传相关常量
const (
	MimeImage = "image/"
)

var (
	AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
)
