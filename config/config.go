package config

import "os"

type Config struct {
	ServerPort        string
	DatabasePath      string
	TesseractDataPath string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	databasePath := os.Getenv("DB_PATH")
	if databasePath == "" {
		databasePath = "mls_properties.db"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata"
	}

	return &Config{
		ServerPort:        serverPort,
		DatabasePath:      databasePath,
		TesseractDataPath: tesseractDataPath,
		MaxFileSize:       50 * 1024 * 1024, // 50 MB, listing sheets can be image-heavy
	}
}
