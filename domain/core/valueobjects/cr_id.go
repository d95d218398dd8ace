package valueobjects

import (
	"encoding/json"
	"errors"
)

// CrID is a value object representing a person's stable cross-reference
// identifier. It is independent of display name or storage location, so
// renaming a note never changes it.
type CrID struct {
	value string
}

// NewCrID creates a CrID from an existing identifier string
func NewCrID(id string) (CrID, error) {
	if id == "" {
		return CrID{}, errors.New("crId cannot be empty")
	}
	return CrID{value: id}, nil
}

// MustCrID creates a CrID and panics on an empty identifier.
// Intended for test fixtures and static definitions.
func MustCrID(id string) CrID {
	crID, err := NewCrID(id)
	if err != nil {
		panic(err)
	}
	return crID
}

// String returns the string representation of the CrID
func (id CrID) String() string {
	return id.value
}

// Equals checks if two CrIDs are equal
func (id CrID) Equals(other CrID) bool {
	return id.value == other.value
}

// IsZero checks if the CrID is the zero value
func (id CrID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id CrID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *CrID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &id.value)
}

// MarshalText implements encoding.TextMarshaler so CrID can key JSON maps
func (id CrID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *CrID) UnmarshalText(text []byte) error {
	id.value = string(text)
	return nil
}
