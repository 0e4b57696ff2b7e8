package config

type StorageConfig struct {
	Provider string           `yaml:"provider"` // gcs, s3, local
	GCS      *GCSConfig       `yaml:"gcs"`
	S3       *S3Config        `yaml:"s3"`
	Local    *LocalDiskConfig `yaml:"local"`
}

type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
}

type S3Config struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
}

type LocalDiskConfig struct {
	BasePath string `yaml:"base_path"`
	BaseURL  string `yaml:"base_url"`
}

func loadStorageConfig() *StorageConfig {
	baseURL := getEnv("APP_BASE_URL", "http://localhost:8080")

	return &StorageConfig{
		Provider: getEnv("STORAGE_PROVIDER", "local"),
		GCS: &GCSConfig{
			Bucket:          getEnv("GCS_BUCKET", ""),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		},
		S3: &S3Config{
			Region: getEnv("AWS_REGION", "eu-south-1"),
			Bucket: getEnv("S3_BUCKET", ""),
		},
		Local: &LocalDiskConfig{
			BasePath: getEnv("LOCAL_STORAGE_PATH", "./uploads"),
			BaseURL:  getEnv("LOCAL_STORAGE_URL", baseURL+"/uploads"),
		},
	}
}
