package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleStatus represents the status of a recorded sale
type SaleStatus int

const (
	SaleStatusCompleted SaleStatus = 0
	SaleStatusPending   SaleStatus = 1
	SaleStatusCancelled SaleStatus = 2
)

var saleStatusNames = [...]string{"Completed", "Pending", "Cancelled"}

func (s SaleStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("SaleStatus(%d)", int(s))
	}
	return saleStatusNames[s]
}

// IsValid reports whether s is one of the known statuses
func (s SaleStatus) IsValid() bool {
	return s >= SaleStatusCompleted && s <= SaleStatusCancelled
}

// ParseSaleStatus converts a status name to a SaleStatus
func ParseSaleStatus(str string) (SaleStatus, error) {
	for i, name := range saleStatusNames {
		if name == str {
			return SaleStatus(i), nil
		}
	}
	return SaleStatusCompleted, fmt.Errorf("unknown sale status %q", str)
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !SaleStatus(i).IsValid() {
			return fmt.Errorf("unknown sale status %d", i)
		}
		*s = SaleStatus(i)
		return nil
	}
	parsed, err := ParseSaleStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into SaleStatus", value)
	}
	return nil
}
