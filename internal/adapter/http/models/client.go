package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const birthDateLayout = "2006-01-02"

type ClientRequest struct {
	IdentificationKind   string `json:"identificationKind"`
	IdentificationNumber string `json:"identificationNumber"`
	GivenName            string `json:"givenName"`
	Surname              string `json:"surname"`
	Email                string `json:"email"`
	BirthDate            string `json:"birthDate"`
}

func (r ClientRequest) Validate() error {
	var errs []string

	if !domain.IdentificationKind(strings.TrimSpace(r.IdentificationKind)).Valid() {
		errs = append(errs, "identificationKind must be one of NATIONAL_ID, FOREIGN_RESIDENT_ID, PASSPORT, TAX_ID")
	}

	number := strings.TrimSpace(r.IdentificationNumber)
	if len(number) < 5 || len(number) > 20 {
		errs = append(errs, "identificationNumber must have between 5 and 20 characters")
	}

	if n := len(strings.TrimSpace(r.GivenName)); n < 2 || n > 100 {
		errs = append(errs, "givenName must have between 2 and 100 characters")
	}
	if n := len(strings.TrimSpace(r.Surname)); n < 2 || n > 100 {
		errs = append(errs, "surname must have between 2 and 100 characters")
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, "email must be a valid address")
	}

	birthDate := strings.TrimSpace(r.BirthDate)
	if birthDate == "" {
		errs = append(errs, "birthDate is required")
	} else if parsed, err := time.Parse(birthDateLayout, birthDate); err != nil {
		errs = append(errs, "birthDate must be in YYYY-MM-DD format")
	} else if !parsed.Before(time.Now()) {
		errs = append(errs, "birthDate must be in the past")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// ParsedBirthDate returns the request birth date; Validate must have
// succeeded first.
func (r ClientRequest) ParsedBirthDate() (time.Time, error) {
	return time.Parse(birthDateLayout, strings.TrimSpace(r.BirthDate))
}

type ClientResponse struct {
	ID                   int64  `json:"id"`
	IdentificationKind   string `json:"identificationKind"`
	IdentificationNumber string `json:"identificationNumber"`
	GivenName            string `json:"givenName"`
	Surname              string `json:"surname"`
	Email                string `json:"email"`
	BirthDate            string `json:"birthDate"`
	Age                  int    `json:"age"`
	AccountCount         int    `json:"accountCount"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
}

type DeleteClientResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

func NewClientResponse(client domain.Client, accountCount int) ClientResponse {
	return ClientResponse{
		ID:                   client.ID,
		IdentificationKind:   string(client.IdentificationKind),
		IdentificationNumber: client.IdentificationNumber,
		GivenName:            client.GivenName,
		Surname:              client.Surname,
		Email:                client.Email,
		BirthDate:            client.BirthDate.Format(birthDateLayout),
		Age:                  client.Age(time.Now().UTC()),
		AccountCount:         accountCount,
		CreatedAt:            client.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            client.UpdatedAt.Format(time.RFC3339),
	}
}
