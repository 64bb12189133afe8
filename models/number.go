package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat decodes from a JSON number or a numeric string such as "29.99".
// An empty string or null decodes to zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s, quoted, err := unquoteNumber(data)
	if err != nil {
		return err
	}
	if !quoted {
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexFloat(v)
		return nil
	}
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt decodes from a JSON integer or an integer string such as "2".
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s, quoted, err := unquoteNumber(data)
	if err != nil {
		return err
	}
	if !quoted {
		var v int
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*n = FlexInt(v)
		return nil
	}
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*n = FlexInt(v)
	return nil
}

func unquoteNumber(data []byte) (string, bool, error) {
	if len(data) == 0 || data[0] != '"' {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", true, err
	}
	return strings.TrimSpace(s), true, nil
}
