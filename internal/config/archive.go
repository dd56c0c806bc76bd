package config

// ArchiveConfig points at the S3-compatible bucket (Cloudflare R2 in production)
// that receives a PDF of every saved salary sheet.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Usable reports whether archiving is switched on and has what it needs
func (a ArchiveConfig) Usable() bool {
	return a.Enabled && a.Bucket != "" && a.AccessKey != "" && a.SecretKey != ""
}
