package config

type StorageConfig struct {
	Provider  string `yaml:"provider"` // local, s3
	LocalPath string `yaml:"local_path"`
	BaseURL   string `yaml:"base_url"`
	S3Region  string `yaml:"s3_region"`
	S3Bucket  string `yaml:"s3_bucket"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		BaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:5000/uploads"),
		S3Region:  getEnv("STORAGE_S3_REGION", "us-east-1"),
		S3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
	}
}
