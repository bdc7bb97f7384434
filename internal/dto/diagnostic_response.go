package dto

type StatusResponse struct {
	Message string `json:"message"`
}

// DiagnosticResponse never carries the values of DATABASE_URL or
// DATABASE_NAME, only whether they are set.
type DiagnosticResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
