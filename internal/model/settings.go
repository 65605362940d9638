package model

// Settings is the singleton configuration record inside the document.
// Updates are shallow merges: unspecified fields are retained.
type Settings struct {
	AppName          string `json:"appName"`
	Version          string `json:"version"`
	MaintenanceMode  bool   `json:"maintenanceMode"`
	MaxLoginAttempts int    `json:"maxLoginAttempts"`
}
