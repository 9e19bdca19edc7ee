package lead

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// PlaceholderNotSpecified fills optional fields so sinks never see
	// an absent value.
	PlaceholderNotSpecified = "Non specificato"

	// Source tags every stored record with the channel it came from.
	Source = "landing-page"

	// ChannelLabel is the human-facing origin shown in sheet rows and
	// chat messages.
	ChannelLabel = "Landing Page"
)

// Form carries the raw, untrusted fields of one submission. Business is
// accepted for compatibility with the form but not stored.
type Form struct {
	Name           string `json:"name" form:"name"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	Business       string `json:"business" form:"business"`
	Challenge      string `json:"challenge" form:"challenge"`
	TimePreference string `json:"timePreference" form:"timePreference"`
}

// ValidationError reports required fields that were missing or blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Record is the lead entity handed to every sink. It is immutable after
// construction and passed by value.
type Record struct {
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Challenge      string    `json:"challenge"`
	TimePreference string    `json:"timePreference"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Timestamp      time.Time `json:"timestamp"`
	Source         string    `json:"source"`
}

// New validates f and builds a Record stamped with now.
//
// name, email and phone must be non-blank; a *ValidationError naming
// every missing field is returned otherwise, and no Record is built.
// Optional fields fall back to PlaceholderNotSpecified.
func New(f Form, now time.Time) (Record, error) {
	var missing []string
	name := strings.TrimSpace(f.Name)
	email := strings.TrimSpace(f.Email)
	phone := strings.TrimSpace(f.Phone)
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return Record{}, &ValidationError{Missing: missing}
	}

	first, last := SplitName(name)
	return Record{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		Phone:          phone,
		Challenge:      orPlaceholder(f.Challenge),
		TimePreference: orPlaceholder(f.TimePreference),
		FirstName:      first,
		LastName:       last,
		Timestamp:      now.UTC(),
		Source:         Source,
	}, nil
}

// SplitName derives first and last name: the first whitespace-delimited
// token, and the remaining tokens joined with single spaces (empty when
// the name is a single token).
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Synthetic returns the fixed record used by the integration test
// endpoint.
func Synthetic(now time.Time) Record {
	rec, _ := New(Form{
		Name:           "Test User",
		Email:          "test@example.com",
		Phone:          "+39 123 456 7890",
		Challenge:      "Test Challenge",
		TimePreference: "Mattina (9-12)",
	}, now)
	return rec
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return PlaceholderNotSpecified
	}
	return s
}
