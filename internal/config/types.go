package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	// Mode is "local" or "remote"; remote sessions need a TournamentID
	// and Turso credentials.
	Mode           string
	TournamentID   string
	Turso          TursoConfig
	AdapterTimeout string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
