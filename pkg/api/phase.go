package api

type (
	// PhaseManagement carries the management flags the API expects on
	// every new phase
	PhaseManagement struct {
		IsEnabled bool `json:"isEnabled"`
	}

	// PhaseUsage carries optional usage flags for a phase
	PhaseUsage struct {
		AutoAdvance  bool `json:"autoAdvance,omitempty"`
		CanBeSkipped bool `json:"canBeSkipped,omitempty"`
	}

	// PhaseCreate is one element of the add-phases request envelope.
	// CustomOrderingNumber is a string on the wire even though callers
	// supply it as an integer
	PhaseCreate struct {
		Name                 string          `json:"name"`
		ManagementProperties PhaseManagement `json:"managementProperties"`
		InternalInformation  string          `json:"internalInformation,omitempty"`
		CustomOrderingNumber string          `json:"customOrderingNumber,omitempty"`
		UsageProperties      *PhaseUsage     `json:"usageProperties,omitempty"`
	}
)
