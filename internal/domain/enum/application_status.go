package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ApplicationStatus represents the review state of a job application
type ApplicationStatus int

const (
	ApplicationStatusNew         ApplicationStatus = 0
	ApplicationStatusReviewing   ApplicationStatus = 1
	ApplicationStatusInterviewed ApplicationStatus = 2
	ApplicationStatusHired       ApplicationStatus = 3
	ApplicationStatusRejected    ApplicationStatus = 4
)

var applicationStatusNames = [...]string{"New", "Reviewing", "Interviewed", "Hired", "Rejected"}

func (s ApplicationStatus) String() string {
	if !s.Valid() {
		return "New"
	}
	return applicationStatusNames[s]
}

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	return int(s) >= 0 && int(s) < len(applicationStatusNames)
}

func (s ApplicationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ApplicationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ApplicationStatus(i)
		return nil
	}
	for i, name := range applicationStatusNames {
		if name == str {
			*s = ApplicationStatus(i)
			return nil
		}
	}
	*s = ApplicationStatus(-1)
	return nil
}

func (s ApplicationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ApplicationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ApplicationStatusNew
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ApplicationStatus(v)
	case int:
		*s = ApplicationStatus(v)
	}
	return nil
}
