package types

import "time"

const (
	DonationStatusPending    = "pending"
	DonationStatusInProgress = "inprogress"
	DonationStatusDone       = "done"
	DonationStatusCanceled   = "canceled"
)

// IsDonationStatus reports whether value is a known donation lifecycle status.
func IsDonationStatus(value string) bool {
	switch value {
	case DonationStatusPending, DonationStatusInProgress, DonationStatusDone, DonationStatusCanceled:
		return true
	}
	return false
}

// DonationRequest represents a request for blood posted by a requester on
// behalf of a recipient.
type DonationRequest struct {
	// ID is the unique identifier of the request.
	ID string `json:"_id,omitempty" db:"id"`

	// RequesterName and RequesterEmail identify the user who posted the request.
	RequesterName  string `json:"requesterName" db:"requester_name"`
	RequesterEmail string `json:"requesterEmail" db:"requester_email"`

	// RecipientName is the patient who needs blood.
	RecipientName string `json:"recipientName" db:"recipient_name"`

	// BloodGroup is the blood group the recipient needs.
	BloodGroup string `json:"bloodGroup" db:"blood_group"`

	// RecipientDistrict and RecipientUpazila locate the recipient.
	RecipientDistrict string `json:"recipientDistrict" db:"recipient_district"`
	RecipientUpazila  string `json:"recipientUpazila" db:"recipient_upazila"`

	// HospitalName and FullAddress describe where the donation takes place.
	HospitalName string `json:"hospitalName" db:"hospital_name"`
	FullAddress  string `json:"fullAddress" db:"full_address"`

	// DonationDate and DonationTime are kept as the client formatted them.
	DonationDate string `json:"donationDate" db:"donation_date"`
	DonationTime string `json:"donationTime" db:"donation_time"`

	// RequestMessage is a free-text note from the requester.
	RequestMessage string `json:"requestMessage" db:"request_message"`

	// DonationStatus is the lifecycle status of the request.
	DonationStatus string `json:"donationStatus" db:"donation_status"`

	// DonorName and DonorEmail are set once a donor claims the request.
	DonorName  string `json:"donorName,omitempty" db:"donor_name"`
	DonorEmail string `json:"donorEmail,omitempty" db:"donor_email"`

	// CreatedAt is the timestamp at which the request was posted.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// DonationDetails holds the requester-editable fields of a request.
type DonationDetails struct {
	RecipientName     string `json:"recipientName"`
	BloodGroup        string `json:"bloodGroup"`
	RecipientDistrict string `json:"recipientDistrict"`
	RecipientUpazila  string `json:"recipientUpazila"`
	HospitalName      string `json:"hospitalName"`
	FullAddress       string `json:"fullAddress"`
	DonationDate      string `json:"donationDate"`
	DonationTime      string `json:"donationTime"`
	RequestMessage    string `json:"requestMessage"`
}

// DonorClaim records a donor taking on a request.
type DonorClaim struct {
	DonorName      string `json:"donorName"`
	DonorEmail     string `json:"donorEmail"`
	DonationStatus string `json:"donationStatus"`
}
