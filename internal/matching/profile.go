// Package matching scores postings against a user profile and ranks them.
package matching

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Profile describes the candidate. Skills absent from the map count as 0.
type Profile struct {
	Skills             map[string]int `mapstructure:"skills" json:"skills" validate:"dive,keys,required,endkeys,min=0,max=3"`
	PreferredLocations []string       `mapstructure:"preferred-locations" json:"preferred_locations" validate:"dive,required"`
}

// Validate checks skill levels and location entries.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}
