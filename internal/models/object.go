package models

import (
	"fmt"
	"strings"
	"time"
)

// ObjectClass ranks how hard an anomaly is to contain.
type ObjectClass string

const (
	ClassSafe        ObjectClass = "SAFE"
	ClassEuclid      ObjectClass = "EUCLID"
	ClassKeter       ObjectClass = "KETER"
	ClassThaumiel    ObjectClass = "THAUMIEL"
	ClassNeutralized ObjectClass = "NEUTRALIZED"
)

var ObjectClasses = []ObjectClass{ClassSafe, ClassEuclid, ClassKeter, ClassThaumiel, ClassNeutralized}

func (c ObjectClass) Valid() bool {
	for _, known := range ObjectClasses {
		if c == known {
			return true
		}
	}
	return false
}

func ParseObjectClass(s string) (ObjectClass, error) {
	c := ObjectClass(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown object class %q", s)
	}
	return c, nil
}

// SCEObject is an encyclopedia record describing one anomaly.
type SCEObject struct {
	ID             string      `json:"id"`
	Number         string      `json:"number"`
	Name           string      `json:"name"`
	ObjectClass    ObjectClass `json:"objectClass"`
	Description    string      `json:"description"`
	Containment    string      `json:"containment"`
	AdditionalInfo string      `json:"additionalInfo,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	CreatedBy      string      `json:"createdBy"`
}

// NewSCEObject carries the caller-supplied fields of an object.
type NewSCEObject struct {
	Number         string
	Name           string
	ObjectClass    ObjectClass
	Description    string
	Containment    string
	AdditionalInfo string
}

// Validate returns a description of the first missing or bad field.
func (n NewSCEObject) Validate() error {
	switch {
	case strings.TrimSpace(n.Number) == "":
		return fmt.Errorf("number is required")
	case strings.TrimSpace(n.Name) == "":
		return fmt.Errorf("name is required")
	case !n.ObjectClass.Valid():
		return fmt.Errorf("unknown object class %q", n.ObjectClass)
	case strings.TrimSpace(n.Description) == "":
		return fmt.Errorf("description is required")
	case strings.TrimSpace(n.Containment) == "":
		return fmt.Errorf("containment procedures are required")
	}
	return nil
}
