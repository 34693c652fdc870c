package phone

import (
	"fmt"

	"github.com/tundex/airtime-bot/internal/errors"

	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "NG"

// Resolver validates raw phone numbers and normalizes them to E.164.
// Numbers without a country code are interpreted against the configured
// default region.
type Resolver struct {
	region string
}

func NewResolver(region string) *Resolver {
	if region == "" {
		region = DefaultRegion
	}

	return &Resolver{region: region}
}

func (r *Resolver) IsValid(raw string) bool {
	num, err := phonenumbers.Parse(raw, r.region)
	if err != nil {
		return false
	}

	return phonenumbers.IsValidNumber(num)
}

// Format returns the E.164 form of raw, or an invalid_phone error when the
// number doesn't parse or isn't valid for its region.
func (r *Resolver) Format(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, r.region)
	if err != nil {
		return "", errors.Wrap(errors.CodeInvalidPhone,
			fmt.Sprintf("invalid phone number %q", raw), err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", errors.New(errors.CodeInvalidPhone,
			fmt.Sprintf("invalid phone number %q", raw))
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
