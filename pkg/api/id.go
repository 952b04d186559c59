package api

type (
	// FlowID is a unique identifier for a flow, assigned by Siteflow
	FlowID string

	// PhaseID is a unique identifier for a phase within a flow
	PhaseID string

	// StepID is a unique identifier for a step within a phase
	StepID string

	// ProjectID identifies the Siteflow project that owns flows
	ProjectID string

	// FamilyID identifies an optional flow family grouping
	FamilyID string
)
