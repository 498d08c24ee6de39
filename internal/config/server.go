package config

// ServerConfig holds configuration for the report server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads report server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("REPORT_PORT")
	if port == "" {
		port = "8080"
	}

	return ServerConfig{
		Port: port,
	}
}
