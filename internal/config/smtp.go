package config

type SMTPConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

func loadSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Enabled:   getEnvAsBool("SMTP_ENABLED", false),
		Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:      getEnvAsInt("SMTP_PORT", 587),
		Username:  getEnv("SMTP_USERNAME", ""),
		Password:  getEnv("SMTP_PASSWORD", ""),
		FromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@rentit.local"),
		FromName:  getEnv("SMTP_FROM_NAME", "RentIt"),
	}
}
