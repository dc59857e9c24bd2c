package utils

// Application constants
const (
	// Application name
	AppName = "CardBay"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Directory QR code images are stored in
	UploadDir = "uploads"
)
