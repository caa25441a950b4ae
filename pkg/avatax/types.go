package avatax

import (
	"github.com/fivetwenty-io/avatax-client/internal/model"
)

// Date is a calendar date serialized as 2006-01-02.
type Date = model.Date

// NewDate returns the Date for the given calendar day.
var NewDate = model.NewDate

// ParseDate parses a 2006-01-02 date.
var ParseDate = model.ParseDate

// File is a binary payload sent as one part of a multipart form.
type File = model.File
