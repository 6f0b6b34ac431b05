package types

// District is a static reference record for a Bangladeshi district.
type District struct {
	ID         string `json:"id" db:"id"`
	DivisionID string `json:"division_id" db:"division_id"`
	Name       string `json:"name" db:"name"`
	BnName     string `json:"bn_name" db:"bn_name"`
	Lat        string `json:"lat" db:"lat"`
	Lon        string `json:"lon" db:"lon"`
	URL        string `json:"url" db:"url"`
}

// Upazila is a static reference record for a sub-district.
type Upazila struct {
	ID         string `json:"id" db:"id"`
	DistrictID string `json:"district_id" db:"district_id"`
	Name       string `json:"name" db:"name"`
	BnName     string `json:"bn_name" db:"bn_name"`
	URL        string `json:"url" db:"url"`
}
