// Package crm forwards each lead as a contact to an external CRM over
// its REST API. The sink is only registered when both the API URL and
// key are configured; it never counts toward the saved-success policy.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

const name = "crm"

type Config struct {
	APIURL string
	APIKey string
}

type Sink struct {
	cfg  Config
	log  logx.Logger
	http *http.Client
}

// contact is the CRM contact-create payload.
type contact struct {
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Name         string        `json:"name"`
	Tags         []string      `json:"tags"`
	Source       string        `json:"source"`
	DateAdded    string        `json:"dateAdded"`
	CustomFields []customField `json:"customFields"`
}

type customField struct {
	Key   string `json:"key"`
	Value string `json:"field_value"`
}

func New(cfg Config, log logx.Logger) *Sink {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Sink{cfg: cfg, log: log, http: &http.Client{Timeout: 8 * time.Second}}
}

func (s *Sink) Name() string { return name }

func (s *Sink) Attempt(ctx context.Context, rec lead.Record) bool {
	if s.cfg.APIURL == "" || s.cfg.APIKey == "" {
		s.log.Debug("crm sink not configured, skipping")
		return false
	}

	payload := contact{
		Email:     rec.Email,
		Phone:     rec.Phone,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Name:      rec.Name,
		Tags:      []string{lead.ChannelLabel},
		Source:    lead.ChannelLabel,
		DateAdded: rec.Timestamp.Format(time.RFC3339),
		CustomFields: []customField{
			{Key: "challenge", Value: rec.Challenge},
			{Key: "time_preference", Value: rec.TimePreference},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("crm payload marshal failed", logx.Err(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		s.log.Error("crm request build failed", logx.Err(err))
		return false
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Error("crm request failed", logx.Err(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Error("crm rejected contact", logx.Int("status", resp.StatusCode), logx.String("lead_id", rec.ID))
		return false
	}

	s.log.Info("lead pushed to crm", logx.String("lead_id", rec.ID))
	return true
}
