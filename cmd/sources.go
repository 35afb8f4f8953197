package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/document"
	"github.com/spigell/ats-scorer/internal/headhunter"
	"github.com/spigell/ats-scorer/internal/secrets"
)

// sources resolves a document location to text. hh.ru vacancy references go
// to the HeadHunter client, everything else to the document loader.
type sources struct {
	documents *document.Loader
	vacancies *headhunter.Client
}

// newSources creates the S3 and HeadHunter clients only when a location
// needs them.
func newSources(ctx context.Context, config *Config, logger *zap.Logger, locations ...string) (*sources, error) {
	s := &sources{documents: document.NewLoader(nil)}

	for _, location := range locations {
		switch {
		case document.IsS3(location) && !s.documents.HasObjects():
			client, err := document.NewS3Client(ctx, config.S3)
			if err != nil {
				return nil, err
			}
			s.documents = document.NewLoader(client)
		case headhunter.IsVacancy(location) && s.vacancies == nil:
			client, err := newHeadHunter(config.HeadHunter, logger)
			if err != nil {
				return nil, err
			}
			s.vacancies = client
		}
	}

	return s, nil
}

func (s *sources) Load(ctx context.Context, location string) (string, error) {
	if s.vacancies != nil && headhunter.IsVacancy(location) {
		return s.vacancies.Load(ctx, location)
	}
	return s.documents.Load(ctx, location)
}

func newHeadHunter(config *HeadHunterConfig, logger *zap.Logger) (*headhunter.Client, error) {
	var token string
	if tokenFile := strings.TrimSpace(config.TokenFile); tokenFile != "" {
		var err error
		token, err = secrets.Load(secrets.Source{Name: "headhunter token", File: tokenFile})
		if err != nil {
			return nil, fmt.Errorf("loading headhunter token: %w", err)
		}
	}

	client := headhunter.New(logger, token)
	if userAgent := strings.TrimSpace(config.UserAgent); userAgent != "" {
		client.UserAgent = userAgent
	}

	return client, nil
}
