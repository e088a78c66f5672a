package types

type (
	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
	GCSBucket       string
)

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }
func (x GCSBucket) String() string       { return string(x) }
