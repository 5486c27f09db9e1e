package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CoverPosition describes the focal point of a cover image: either a named
// anchor (top/center/bottom) or an explicit {x,y} percentage pair.
type CoverPosition struct {
	Anchor string
	X      float64
	Y      float64
	HasXY  bool
}

var validAnchors = map[string]struct{}{
	"top":    {},
	"center": {},
	"bottom": {},
}

// Valid reports whether the position is a known anchor or an in-range pair.
func (p CoverPosition) Valid() bool {
	if p.HasXY {
		return p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100
	}
	if p.Anchor == "" {
		return true
	}
	_, ok := validAnchors[p.Anchor]
	return ok
}

// IsZero reports whether no position was supplied.
func (p CoverPosition) IsZero() bool {
	return !p.HasXY && p.Anchor == ""
}

// UnmarshalJSON accepts "top" style anchors or {"x": 30, "y": 65}.
func (p *CoverPosition) UnmarshalJSON(data []byte) error {
	var anchor string
	if err := json.Unmarshal(data, &anchor); err == nil {
		*p = CoverPosition{Anchor: strings.ToLower(strings.TrimSpace(anchor))}
		return nil
	}

	var pair struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	*p = CoverPosition{X: pair.X, Y: pair.Y, HasXY: true}
	return nil
}

// MarshalJSON mirrors the accepted forms.
func (p CoverPosition) MarshalJSON() ([]byte, error) {
	if p.HasXY {
		return json.Marshal(map[string]float64{"x": p.X, "y": p.Y})
	}
	return json.Marshal(p.Anchor)
}

// Value persists the position as a compact text column.
func (p CoverPosition) Value() (driver.Value, error) {
	if p.HasXY {
		return fmt.Sprintf("%s,%s",
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64)), nil
	}
	return p.Anchor, nil
}

// Scan restores the position from its text column form.
func (p *CoverPosition) Scan(value interface{}) error {
	if value == nil {
		*p = CoverPosition{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return errors.New("unsupported cover position column type")
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*p = CoverPosition{}
		return nil
	}

	if x, y, ok := strings.Cut(raw, ","); ok {
		px, errX := strconv.ParseFloat(x, 64)
		py, errY := strconv.ParseFloat(y, 64)
		if errX != nil || errY != nil {
			return fmt.Errorf("malformed cover position %q", raw)
		}
		*p = CoverPosition{X: px, Y: py, HasXY: true}
		return nil
	}

	*p = CoverPosition{Anchor: raw}
	return nil
}
