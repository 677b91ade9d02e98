package config

// NewFilterForTest creates a Filter config for testing purposes
func NewFilterForTest(start, end string, regions []string, sla string) *Filter {
	return &Filter{
		start:   start,
		end:     end,
		regions: regions,
		sla:     sla,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channel, apiURL string) *Slack {
	return &Slack{
		botToken: botToken,
		channel:  channel,
		apiURL:   apiURL,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
