package attribution

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount accepts a JSON number or a numeric string; sales platforms disagree
// on which they send. OK records whether the payload carried a usable value:
// null, the empty string and the number 0 count as absent, but the string
// "0" is a deliberate zero and counts as present.
type Amount struct {
	Float float64
	OK    bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*a = Amount{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = Amount{}
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*a = Amount{Float: f, OK: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount{Float: f, OK: f != 0}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Float)
}
