package billing

import "errors"

var ErrBillNotFound = errors.New("bill not found")
