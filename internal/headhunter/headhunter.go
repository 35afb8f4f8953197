// Package headhunter fetches job descriptions from the HeadHunter (hh.ru)
// public vacancy API.
package headhunter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.hh.ru"
	userAgent = "spigell/ats-scorer (spigelly@gmail.com)"
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a Client. The token is optional since vacancies are public.
func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  strings.TrimSpace(token),
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// GetVacancy returns the vacancy with the given id.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	var vacancy Vacancy
	if err := c.getJSON(ctx, fmt.Sprintf("%s/vacancies/%s", c.APIURL, id), &vacancy); err != nil {
		return nil, fmt.Errorf("getting vacancy %s: %w", id, err)
	}

	c.logger.Debug("got vacancy from HH.ru",
		zap.String("vacancy_id", vacancy.ID),
		zap.String("vacancy_name", vacancy.Name),
		zap.Int("key_skills", len(vacancy.KeySkills)),
	)

	return &vacancy, nil
}

// Load fetches the vacancy referenced by location and returns its text.
func (c *Client) Load(ctx context.Context, location string) (string, error) {
	id, ok := ParseVacancyID(location)
	if !ok {
		return "", fmt.Errorf("not a vacancy location: %q", location)
	}

	vacancy, err := c.GetVacancy(ctx, id)
	if err != nil {
		return "", err
	}

	return vacancy.Text(), nil
}
