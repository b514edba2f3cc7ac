package labreport

import "errors"

var ErrReportNotFound = errors.New("lab report not found")
