package domain

import "time"

type IdentificationKind string

const (
	IdentificationNationalID      IdentificationKind = "NATIONAL_ID"
	IdentificationForeignResident IdentificationKind = "FOREIGN_RESIDENT_ID"
	IdentificationPassport        IdentificationKind = "PASSPORT"
	IdentificationTaxID           IdentificationKind = "TAX_ID"
)

func (k IdentificationKind) Valid() bool {
	switch k {
	case IdentificationNationalID, IdentificationForeignResident, IdentificationPassport, IdentificationTaxID:
		return true
	}
	return false
}

type Client struct {
	ID                   int64
	IdentificationKind   IdentificationKind
	IdentificationNumber string
	GivenName            string
	Surname              string
	Email                string
	BirthDate            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Age returns the client's whole years of age at the given instant.
func (c Client) Age(at time.Time) int {
	years := at.Year() - c.BirthDate.Year()
	anniversary := c.BirthDate.AddDate(years, 0, 0)
	if at.Before(anniversary) {
		years--
	}
	return years
}

// IsAdult reports whether the client is at least 18 years old at the given instant.
func (c Client) IsAdult(at time.Time) bool {
	return c.Age(at) >= 18
}

// DisplayName is the client's presentation name used when enriching
// account responses.
func (c Client) DisplayName() string {
	return c.GivenName + " " + c.Surname
}

// PrepareForInsert stamps the creation and modification timestamps
// immediately before the entity is handed to the store.
func (c *Client) PrepareForInsert(now time.Time) {
	c.CreatedAt = now
	c.UpdatedAt = now
}

// PrepareForUpdate refreshes the modification timestamp immediately before
// the entity is handed to the store.
func (c *Client) PrepareForUpdate(now time.Time) {
	c.UpdatedAt = now
}
