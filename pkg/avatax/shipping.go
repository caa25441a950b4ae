package avatax

import (
	"encoding/json"
)

// DocumentType selects which transaction document a shipment call refers to.
type DocumentType string

// Document types accepted by the shipment endpoints.
const (
	DocumentTypeSalesOrder               DocumentType = "SalesOrder"
	DocumentTypeSalesInvoice             DocumentType = "SalesInvoice"
	DocumentTypeReturnOrder              DocumentType = "ReturnOrder"
	DocumentTypeReturnInvoice            DocumentType = "ReturnInvoice"
	DocumentTypePurchaseOrder            DocumentType = "PurchaseOrder"
	DocumentTypePurchaseInvoice          DocumentType = "PurchaseInvoice"
	DocumentTypeReverseChargeOrder       DocumentType = "ReverseChargeOrder"
	DocumentTypeReverseChargeInvoice     DocumentType = "ReverseChargeInvoice"
	DocumentTypeCustomsInvoice           DocumentType = "CustomsInvoice"
	DocumentTypeCustomsOrder             DocumentType = "CustomsOrder"
	DocumentTypeInventoryTransferOrder   DocumentType = "InventoryTransferOrder"
	DocumentTypeInventoryTransferInvoice DocumentType = "InventoryTransferInvoice"
	DocumentTypeAny                      DocumentType = "Any"
)

// DocumentTypes lists every DocumentType in wire form.
func DocumentTypes() []string {
	return []string{
		string(DocumentTypeSalesOrder),
		string(DocumentTypeSalesInvoice),
		string(DocumentTypeReturnOrder),
		string(DocumentTypeReturnInvoice),
		string(DocumentTypePurchaseOrder),
		string(DocumentTypePurchaseInvoice),
		string(DocumentTypeReverseChargeOrder),
		string(DocumentTypeReverseChargeInvoice),
		string(DocumentTypeCustomsInvoice),
		string(DocumentTypeCustomsOrder),
		string(DocumentTypeInventoryTransferOrder),
		string(DocumentTypeInventoryTransferInvoice),
		string(DocumentTypeAny),
	}
}

// ShipmentRequest identifies the transaction a shipment call acts on.
type ShipmentRequest struct {
	// CompanyCode is the company that recorded the transaction. Required.
	CompanyCode string `json:"companyCode" yaml:"companyCode"`
	// TransactionCode is the transaction code. Required.
	TransactionCode string `json:"transactionCode" yaml:"transactionCode"`
	// DocumentType narrows the lookup. Omitted when empty.
	DocumentType DocumentType `json:"documentType,omitempty" yaml:"documentType,omitempty"`
}

// ShippingVerifyResult is the compliance verdict for a transaction.
type ShippingVerifyResult struct {
	Compliant       bool                        `json:"compliant"                 yaml:"compliant"`
	Message         string                      `json:"message,omitempty"         yaml:"message,omitempty"`
	SuccessMessages string                      `json:"successMessages,omitempty" yaml:"successMessages,omitempty"`
	FailureMessages string                      `json:"failureMessages,omitempty" yaml:"failureMessages,omitempty"`
	FailureCodes    []ShippingFailureCode       `json:"failureCodes,omitempty"    yaml:"failureCodes,omitempty"`
	Lines           []ShippingVerifyResultLines `json:"lines,omitempty"           yaml:"lines,omitempty"`
}

// ShippingVerifyResultLines is the verdict for one transaction line.
type ShippingVerifyResultLines struct {
	ResultCode      ShippingResultCode    `json:"resultCode,omitempty"      yaml:"resultCode,omitempty"`
	LineNumber      string                `json:"lineNumber,omitempty"      yaml:"lineNumber,omitempty"`
	Message         string                `json:"message,omitempty"         yaml:"message,omitempty"`
	SuccessMessages string                `json:"successMessages,omitempty" yaml:"successMessages,omitempty"`
	FailureMessages string                `json:"failureMessages,omitempty" yaml:"failureMessages,omitempty"`
	FailureCodes    []ShippingFailureCode `json:"failureCodes,omitempty"    yaml:"failureCodes,omitempty"`
}

// ShippingResultCode is the per-line compliance outcome.
type ShippingResultCode string

// Line result codes.
const (
	ShippingResultCompliant          ShippingResultCode = "Compliant"
	ShippingResultNotCompliant       ShippingResultCode = "NotCompliant"
	ShippingResultUnsupportedTaxCode ShippingResultCode = "UnsupportedTaxCode"
	ShippingResultUnsupportedAddress ShippingResultCode = "UnsupportedAddress"
	ShippingResultInvalidLine        ShippingResultCode = "InvalidLine"
)

// ShippingFailureCode explains why a shipment is not compliant.
type ShippingFailureCode string

// Failure codes reported by shipment verification.
const (
	ShippingFailureBelowLegalDrinkingAge ShippingFailureCode = "BelowLegalDrinkingAge"
	ShippingFailureShippingProhibited    ShippingFailureCode = "ShippingProhibitedToAddress"
	ShippingFailureMissingRequiredParam  ShippingFailureCode = "MissingRequiredParam"
	ShippingFailureNoActiveLicense       ShippingFailureCode = "NoActiveLicense"
	ShippingFailureProductNotRegistered  ShippingFailureCode = "ProductNotRegistered"
	ShippingFailureQuantityLimit         ShippingFailureCode = "QuantityLimitExceeded"
	ShippingFailureVolumeLimit           ShippingFailureCode = "VolumeLimitExceeded"
)

// ErrorDetails is the documented error payload of the AvaTax REST API.
type ErrorDetails struct {
	Error *ErrorDetailsError `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrorDetailsError is the body of ErrorDetails. Services that answer with a
// bare string in the error property yield a value with only Message set.
type ErrorDetailsError struct {
	Code    string                     `json:"code,omitempty"    yaml:"code,omitempty"`
	Message string                     `json:"message,omitempty" yaml:"message,omitempty"`
	Target  string                     `json:"target,omitempty"  yaml:"target,omitempty"`
	Details []ErrorDetailsErrorDetails `json:"details,omitempty" yaml:"details,omitempty"`
}

// UnmarshalJSON accepts either an object or a plain string.
func (e *ErrorDetailsError) UnmarshalJSON(data []byte) error {
	var message string
	if err := json.Unmarshal(data, &message); err == nil {
		*e = ErrorDetailsError{Message: message}

		return nil
	}

	type plain ErrorDetailsError

	var decoded plain

	err := json.Unmarshal(data, &decoded)
	if err != nil {
		return err
	}

	*e = ErrorDetailsError(decoded)

	return nil
}

// ErrorDetailsErrorDetails is one entry of ErrorDetailsError.Details.
type ErrorDetailsErrorDetails struct {
	Code        string `json:"code,omitempty"        yaml:"code,omitempty"`
	Message     string `json:"message,omitempty"     yaml:"message,omitempty"`
	Number      int    `json:"number,omitempty"      yaml:"number,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	FaultCode   string `json:"faultCode,omitempty"   yaml:"faultCode,omitempty"`
	HelpLink    string `json:"helpLink,omitempty"    yaml:"helpLink,omitempty"`
	Severity    string `json:"severity,omitempty"    yaml:"severity,omitempty"`
}
