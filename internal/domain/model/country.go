package model

// Country is reference data used to validate registration and render phone
// prefixes. Rows are seeded, never written by the API.
type Country struct {
	ID          string `json:"countryId"`
	Name        string `json:"name"`
	Code        string `json:"code"`        // ISO 3166-1 alpha-2
	CallingCode string `json:"callingCode"` // e.g. "+91"
}
