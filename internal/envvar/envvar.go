package envvar

const (
	// PrintflowEnv is the environment variable used to determine the environment
	PrintflowEnv = "PRINTFLOW_ENV"

	// PrintflowConfig is the environment variable used to locate the driver config file
	PrintflowConfig = "PRINTFLOW_CONFIG"

	// PrintflowLogFile is the environment variable used to override the log file path
	PrintflowLogFile = "PRINTFLOW_LOG_FILE"
)
