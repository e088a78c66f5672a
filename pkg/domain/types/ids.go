package types

import "github.com/google/uuid"

type (
	RequestID string
	ReportID  string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

var reportNamespace = uuid.MustParse("6f1c8e2a-3b5d-4c7e-9a10-2d4f6b8c0e13")

// ReportIDOf derives a stable report ID (UUID v5) from the given name.
func ReportIDOf(name []byte) ReportID {
	return ReportID(uuid.NewSHA1(reportNamespace, name).String())
}

func (x ReportID) String() string { return string(x) }
