package avatax

// AgeVerifyFailureCode explains why an age verification failed. The same
// values select a simulated failure in the sandbox.
type AgeVerifyFailureCode string

// Age verification failure codes.
const (
	AgeVerifyFailureNotFound        AgeVerifyFailureCode = "not_found"
	AgeVerifyFailureDOBUnverifiable AgeVerifyFailureCode = "dob_unverifiable"
	AgeVerifyFailureUnderAge        AgeVerifyFailureCode = "under_age"
	AgeVerifyFailureSuspectedFraud  AgeVerifyFailureCode = "suspected_fraud"
	AgeVerifyFailureDeceased        AgeVerifyFailureCode = "deceased"
	AgeVerifyFailureUnknownError    AgeVerifyFailureCode = "unknown_error"
)

// AgeVerifyFailureCodes lists every AgeVerifyFailureCode in wire form.
func AgeVerifyFailureCodes() []string {
	return []string{
		string(AgeVerifyFailureNotFound),
		string(AgeVerifyFailureDOBUnverifiable),
		string(AgeVerifyFailureUnderAge),
		string(AgeVerifyFailureSuspectedFraud),
		string(AgeVerifyFailureDeceased),
		string(AgeVerifyFailureUnknownError),
	}
}

// AgeVerifyRequest describes the person whose age is checked.
type AgeVerifyRequest struct {
	FirstName string                  `json:"firstName" yaml:"firstName" validate:"required"`
	LastName  string                  `json:"lastName"  yaml:"lastName"  validate:"required"`
	Address   AgeVerifyRequestAddress `json:"address"   yaml:"address"`
	// DOB is the date of birth.
	DOB Date `json:"DOB" yaml:"DOB" validate:"required"`
}

// AgeVerifyRequestAddress is the residential address of the person.
type AgeVerifyRequestAddress struct {
	Line1      string `json:"line1"      yaml:"line1"      validate:"required"`
	City       string `json:"city"       yaml:"city"       validate:"required"`
	Region     string `json:"region"     yaml:"region"     validate:"required"`
	Country    string `json:"country"    yaml:"country"    validate:"required,oneof=US USA"`
	PostalCode string `json:"postalCode" yaml:"postalCode" validate:"required"`
}

// AgeVerifyResult is the outcome of an age verification.
type AgeVerifyResult struct {
	IsOfAge      bool                   `json:"isOfAge"                yaml:"isOfAge"`
	FailureCodes []AgeVerifyFailureCode `json:"failureCodes,omitempty" yaml:"failureCodes,omitempty"`
}
