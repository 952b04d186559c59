package api

import (
	"errors"
	"fmt"
)

type (
	// ThematicBlock names a content block type that can be enabled on a
	// step
	ThematicBlock string

	// StepManagement carries the management properties the API expects
	// on every new step
	StepManagement struct {
		ListEnabledThematicBlocks []ThematicBlock `json:"listEnabledThematicBlocks"`
	}

	// StepCreate is one element of the add-steps request envelope
	StepCreate struct {
		Name                 string         `json:"name"`
		ManagementProperties StepManagement `json:"managementProperties"`
		InternalInformation  string         `json:"internalInformation,omitempty"`
		CustomOrderingNumber string         `json:"customOrderingNumber,omitempty"`
	}

	// TextUpdate is the body of an update-text-block request
	TextUpdate struct {
		Data string `json:"data"`
	}
)

const (
	BlockInstruction ThematicBlock = "INSTRUCTION"
	BlockChecklist   ThematicBlock = "CHECKLIST"
	BlockForm        ThematicBlock = "FORM"
	BlockSignature   ThematicBlock = "SIGNATURE"
)

var ErrInvalidThematicBlock = errors.New("invalid thematic block")

// DefaultThematicBlocks is applied when a step is created without an
// explicit block list
var DefaultThematicBlocks = []ThematicBlock{BlockInstruction}

// Validate checks that the block is one of the values accepted by the
// Siteflow API
func (b ThematicBlock) Validate() error {
	switch b {
	case BlockInstruction, BlockChecklist, BlockForm, BlockSignature:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidThematicBlock, string(b))
	}
}
