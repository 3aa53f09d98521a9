package config

const VERSION = "0.3.0"

// Config holds global application settings
type Config struct {
	Debug   bool
	Quiet   bool
	Version string

	Dialect     string // "pbs", "torque", "sge"; empty means detect
	Template    string // Batch script header literal or template file path
	QsubArgs    string // Extra arguments for every qsub call
	Interpreter string // Runs each node script inside its batch script
	Shell       string // Runs submit_jobs.sh
	SubmitBin   string // Submit client written into submit_jobs.sh
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to built-in defaults.
func LoadDefaults() {
	Global = Config{
		Debug:   false,
		Quiet:   false,
		Version: VERSION,

		Dialect:     "",
		Template:    "",
		QsubArgs:    "",
		Interpreter: "bash",
		Shell:       "bash",
		SubmitBin:   "qsub",
	}
}
