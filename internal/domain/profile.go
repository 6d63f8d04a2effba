package domain

import (
	"fmt"
)

// Gender is the applicant gender used for rating
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// HealthStatus is the applicant's declared health classification
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// OccupationRisk classifies the applicant's occupation hazard level
type OccupationRisk string

const (
	OccupationLow    OccupationRisk = "low"
	OccupationMedium OccupationRisk = "medium"
	OccupationHigh   OccupationRisk = "high"
)

// PaymentFrequency is how often the applicant pays the premium
type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemiAnnual PaymentFrequency = "semi_annual"
	FrequencyAnnual     PaymentFrequency = "annual"
	FrequencyLumpSum    PaymentFrequency = "lump_sum"
)

// Defaults applied when a profile field is absent. These are deliberate leniencies
// carried over from the original product behavior; see DESIGN.md.
const (
	DefaultHealthStatus   = HealthGood
	DefaultOccupationRisk = OccupationLow
	DefaultFrequency      = FrequencyAnnual
)

// AllFrequencies returns the supported cadences in comparison display order.
// Monthly first: it is the baseline every other cadence's savings are measured
// against.
func AllFrequencies() []PaymentFrequency {
	return []PaymentFrequency{
		FrequencyMonthly,
		FrequencyQuarterly,
		FrequencySemiAnnual,
		FrequencyAnnual,
		FrequencyLumpSum,
	}
}

// ParseGender converts a string to a Gender
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	}
	return "", fmt.Errorf("unknown gender %q (must be %q or %q)", s, GenderMale, GenderFemale)
}

// ParseHealthStatus converts a string to a HealthStatus, applying the default
// when the string is empty
func ParseHealthStatus(s string) (HealthStatus, error) {
	if s == "" {
		return DefaultHealthStatus, nil
	}
	switch HealthStatus(s) {
	case HealthExcellent, HealthGood, HealthFair, HealthPoor:
		return HealthStatus(s), nil
	}
	return "", fmt.Errorf("unknown health status %q", s)
}

// ParseOccupationRisk converts a string to an OccupationRisk, applying the
// default when the string is empty
func ParseOccupationRisk(s string) (OccupationRisk, error) {
	if s == "" {
		return DefaultOccupationRisk, nil
	}
	switch OccupationRisk(s) {
	case OccupationLow, OccupationMedium, OccupationHigh:
		return OccupationRisk(s), nil
	}
	return "", fmt.Errorf("unknown occupation risk %q", s)
}

// ParsePaymentFrequency converts a string to a PaymentFrequency, applying the
// default when the string is empty
func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	if s == "" {
		return DefaultFrequency, nil
	}
	switch PaymentFrequency(s) {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnual, FrequencyAnnual, FrequencyLumpSum:
		return PaymentFrequency(s), nil
	}
	return "", fmt.Errorf("unknown payment frequency %q", s)
}

// RatingProfile carries the applicant inputs for a single premium calculation
type RatingProfile struct {
	Age              int              `yaml:"age" json:"age"`
	Gender           Gender           `yaml:"gender" json:"gender"`
	HealthStatus     HealthStatus     `yaml:"health_status,omitempty" json:"healthStatus,omitempty"`
	OccupationRisk   OccupationRisk   `yaml:"occupation_risk,omitempty" json:"occupationRisk,omitempty"`
	PaymentFrequency PaymentFrequency `yaml:"payment_frequency,omitempty" json:"paymentFrequency,omitempty"`
}

// Normalized returns a copy of the profile with the documented defaults filled
// in for any absent optional field.
func (p RatingProfile) Normalized() RatingProfile {
	if p.HealthStatus == "" {
		p.HealthStatus = DefaultHealthStatus
	}
	if p.OccupationRisk == "" {
		p.OccupationRisk = DefaultOccupationRisk
	}
	if p.PaymentFrequency == "" {
		p.PaymentFrequency = DefaultFrequency
	}
	return p
}

// Validate checks that every populated field holds a known value
func (p RatingProfile) Validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive, got %d", p.Age)
	}
	if _, err := ParseGender(string(p.Gender)); err != nil {
		return err
	}
	if _, err := ParseHealthStatus(string(p.HealthStatus)); err != nil {
		return err
	}
	if _, err := ParseOccupationRisk(string(p.OccupationRisk)); err != nil {
		return err
	}
	if _, err := ParsePaymentFrequency(string(p.PaymentFrequency)); err != nil {
		return err
	}
	return nil
}

// Key returns a stable identity for memoizing calculations over this profile
func (p RatingProfile) Key() string {
	n := p.Normalized()
	return fmt.Sprintf("%d|%s|%s|%s|%s", n.Age, n.Gender, n.HealthStatus, n.OccupationRisk, n.PaymentFrequency)
}
