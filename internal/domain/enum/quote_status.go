package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteStatus represents where a catering quote is in its lifecycle
type QuoteStatus int

const (
	QuoteStatusDraft    QuoteStatus = 0
	QuoteStatusSent     QuoteStatus = 1
	QuoteStatusAccepted QuoteStatus = 2
	QuoteStatusDeclined QuoteStatus = 3
	QuoteStatusPaid     QuoteStatus = 4
)

var quoteStatusNames = [...]string{"Draft", "Sent", "Accepted", "Declined", "Paid"}

func (s QuoteStatus) String() string {
	if !s.Valid() {
		return "Draft"
	}
	return quoteStatusNames[s]
}

// Valid reports whether s is a known status
func (s QuoteStatus) Valid() bool {
	return int(s) >= 0 && int(s) < len(quoteStatusNames)
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	for i, name := range quoteStatusNames {
		if name == str {
			*s = QuoteStatus(i)
			return nil
		}
	}
	*s = QuoteStatus(-1)
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
