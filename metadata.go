package enumparam

import (
	"fmt"
	"github.com/google/uuid"
)

// Exposure is where the host's object browser shows a parameter.
type Exposure int

const (
	ExposureHidden Exposure = iota
	ExposurePrimary
	ExposureSecondary
	ExposureTertiary
	ExposureObscure
)

func (e Exposure) String() string {
	switch e {
	case ExposureHidden:
		return "hidden"
	case ExposurePrimary:
		return "primary"
	case ExposureSecondary:
		return "secondary"
	case ExposureTertiary:
		return "tertiary"
	case ExposureObscure:
		return "obscure"
	}
	return fmt.Sprintf("Exposure(%d)", int(e))
}

// Metadata is the identity and display information of an enumeration wrapper.
// ID is the stable component GUID the host catalog keys on; it is required
// for catalog registration. Every other field is optional.
type Metadata struct {
	ID          string
	Name        string
	NickName    string
	Description string
	Category    string
	SubCategory string
	Exposure    Exposure
}

// ComponentID parses ID.
func (m Metadata) ComponentID() (uuid.UUID, error) {
	if m.ID == "" {
		return uuid.Nil, fmt.Errorf("no component id declared")
	}
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("component id %q: %w", m.ID, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("component id must not be the nil GUID")
	}
	return id, nil
}
