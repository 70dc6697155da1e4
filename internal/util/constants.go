package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// ContextUserKey holds the verified *Claims of an authenticated request.
const ContextUserKey = "user"
