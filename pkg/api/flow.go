package api

import (
	"errors"
	"fmt"
)

type (
	// FlowType categorizes a flow record
	FlowType string

	// FlowProperties describes a flow to be created
	FlowProperties struct {
		Name               string   `json:"name"`
		Type               FlowType `json:"type"`
		Description        string   `json:"description,omitempty"`
		CategoryIdentifier string   `json:"categoryIdentifier,omitempty"`
		FamilyIdentifier   FamilyID `json:"familyIdentifier,omitempty"`
		FamilyCustomCode   string   `json:"familyCustomCode,omitempty"`
		Reference          string   `json:"reference,omitempty"`
	}

	// FlowCreate is one element of the bulk-create request envelope
	FlowCreate struct {
		FlowProperties    FlowProperties `json:"flowProperties"`
		ProjectIdentifier ProjectID      `json:"projectIdentifier"`
	}
)

const (
	FlowTypeCore    FlowType = "CORE"
	FlowTypeHead    FlowType = "HEAD"
	FlowTypeGeneric FlowType = "GENERIC"
	FlowTypeForm    FlowType = "FORM"

	// DefaultFlowType is applied when a flow is created without an
	// explicit type
	DefaultFlowType = FlowTypeGeneric
)

var ErrInvalidFlowType = errors.New("invalid flow type")

// Validate checks that the flow type is one of the values accepted by the
// Siteflow API
func (t FlowType) Validate() error {
	switch t {
	case FlowTypeCore, FlowTypeHead, FlowTypeGeneric, FlowTypeForm:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidFlowType, string(t))
	}
}
