package providers

import (
	"context"
	"log"
)

const providerLog = "log"

// LogProvider is the development backend: it records that a message would
// have been sent without delivering anything. Message bodies are not logged;
// they may contain temporary credentials.
type LogProvider struct {
	logger *log.Logger
}

func NewLogProvider(logger *log.Logger) *LogProvider {
	if logger == nil {
		logger = log.Default()
	}
	return &LogProvider{logger: logger}
}

func (p *LogProvider) Name() string {
	return providerLog
}

func (p *LogProvider) Send(_ context.Context, data *EmailData) (*EmailResult, error) {
	p.logger.Printf("mail: would send %q to %v", data.Subject, data.To)
	return &EmailResult{Success: true, Provider: providerLog}, nil
}
