package config

const (
	StorageProviderLocal      = "local"
	StorageProviderS3         = "s3"
	StorageProviderGCS        = "gcs"
	StorageProviderCloudinary = "cloudinary"
)

type StorageConfig struct {
	Provider   string                   `yaml:"provider"`
	MaxImages  int                      `yaml:"max_images"`
	Local      *LocalStorageConfig      `yaml:"local"`
	AWS        *AWSStorageConfig        `yaml:"aws"`
	GCP        *GCPStorageConfig        `yaml:"gcp"`
	Cloudinary *CloudinaryStorageConfig `yaml:"cloudinary"`
}

type LocalStorageConfig struct {
	BasePath string `yaml:"base_path"`
	BaseURL  string `yaml:"base_url"`
}

type AWSStorageConfig struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	CDNDomain string `yaml:"cdn_domain"`
}

type GCPStorageConfig struct {
	ProjectID       string `yaml:"project_id"`
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	CDNDomain       string `yaml:"cdn_domain"`
}

type CloudinaryStorageConfig struct {
	URL    string `yaml:"url"`
	Folder string `yaml:"folder"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", StorageProviderLocal),
		MaxImages: getEnvAsInt("STORAGE_MAX_IMAGES", 6),
		Local: &LocalStorageConfig{
			BasePath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
			BaseURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:4000/uploads"),
		},
		AWS: &AWSStorageConfig{
			Region:    getEnv("AWS_S3_REGION", "us-east-1"),
			Bucket:    getEnv("AWS_S3_BUCKET", ""),
			CDNDomain: getEnv("AWS_CLOUDFRONT_DOMAIN", ""),
		},
		GCP: &GCPStorageConfig{
			ProjectID:       getEnv("GCP_PROJECT_ID", ""),
			Bucket:          getEnv("GCP_STORAGE_BUCKET", ""),
			CredentialsFile: getEnv("GCP_CREDENTIALS_FILE", ""),
			CDNDomain:       getEnv("GCP_CDN_DOMAIN", ""),
		},
		Cloudinary: &CloudinaryStorageConfig{
			URL:    getEnv("CLOUDINARY_URL", ""),
			Folder: getEnv("CLOUDINARY_FOLDER", "uploads"),
		},
	}
}
