package models

// Company is the brand record for a client workspace. Brand colors are hex
// strings and may be empty; the analyzer treats missing colors as absent votes.
type Company struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	OwnerUserID    string          `db:"owner_user_id" json:"ownerUserId"`
	PrimaryColor   string          `db:"primary_color" json:"primaryColor,omitempty"`
	SecondaryColor string          `db:"secondary_color" json:"secondaryColor,omitempty"`
	AccentColor    string          `db:"accent_color" json:"accentColor,omitempty"`
	BrandColors    JSONStringArray `db:"brand_colors" json:"brandColors,omitempty"`
	Industry       string          `db:"industry" json:"industry,omitempty"`
}

// TemperatureBucket is a brand color temperature classification.
type TemperatureBucket string

// The three temperature buckets.
const (
	BucketWarm    TemperatureBucket = "warm"
	BucketCool    TemperatureBucket = "cool"
	BucketNeutral TemperatureBucket = "neutral"
)

// ColorProfile is the derived warm/cool/neutral signature of a brand palette.
// Distribution weights are normalized to sum 1.0.
type ColorProfile struct {
	Dominant     TemperatureBucket             `json:"dominant"`
	Distribution map[TemperatureBucket]float64 `json:"distribution"`
}

// Weight returns the distribution weight for a bucket, 0 when absent.
func (p ColorProfile) Weight(b TemperatureBucket) float64 {
	if p.Distribution == nil {
		return 0
	}
	return p.Distribution[b]
}
