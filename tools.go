package mcp

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/localrivet/gomcp/server"

	"github.com/siteflow-tools/siteflow-mcp/pkg/api"
	"github.com/siteflow-tools/siteflow-mcp/pkg/log"
)

type (
	flowPhasesArgs struct {
		FlowID string `json:"flow_id"`
	}

	createFlowArgs struct {
		FlowName         string `json:"flow_name"`
		ProjectID        string `json:"project_id"`
		FlowType         string `json:"flow_type,omitempty"`
		Description      string `json:"description,omitempty"`
		CategoryID       string `json:"category_id,omitempty"`
		FamilyID         string `json:"family_id,omitempty"`
		FamilyCustomCode string `json:"family_custom_code,omitempty"`
		Reference        string `json:"reference,omitempty"`
	}

	addPhaseArgs struct {
		FlowID           string `json:"flow_id"`
		PhaseName        string `json:"phase_name"`
		PhaseDescription string `json:"phase_description,omitempty"`
		OrderingNumber   *int   `json:"ordering_number,omitempty"`
		AutoAdvance      bool   `json:"auto_advance,omitempty"`
		CanBeSkipped     bool   `json:"can_be_skipped,omitempty"`
	}

	addStepArgs struct {
		PhaseID         string   `json:"phase_id"`
		StepName        string   `json:"step_name"`
		StepDescription string   `json:"step_description,omitempty"`
		OrderingNumber  *int     `json:"ordering_number,omitempty"`
		ThematicBlocks  []string `json:"enabled_thematic_blocks,omitempty"`
	}

	updateStepTextArgs struct {
		StepID      string `json:"step_id"`
		TextContent string `json:"text_content"`
	}
)

var ErrInvalidParams = errors.New("invalid params")

func (s *Server) registerTools(srv server.Server) {
	srv.Tool(
		"authenticate",
		"Authenticate with the Siteflow API",
		func(_ *server.Context, _ any) (any, error) {
			if err := s.api.Authenticate(s.ctx); err != nil {
				return nil, err
			}
			return toolResult(map[string]any{
				"authenticated": true,
				"projectId":     s.api.ProjectID(),
			}, nil)
		},
	)

	srv.Tool(
		"get_flows",
		"List flows for the configured project",
		func(_ *server.Context, _ any) (any, error) {
			payload, err := s.api.GetFlows(s.ctx)
			return toolResult(payload, err)
		},
	)

	srv.Tool(
		"get_flow_phases",
		"List phases for a specific flow",
		func(_ *server.Context, args flowPhasesArgs) (any, error) {
			if args.FlowID == "" {
				return nil, errInvalidParams("flow_id is required")
			}
			payload, err := s.api.GetFlowPhases(
				s.ctx, api.FlowID(args.FlowID),
			)
			return toolResult(payload, err)
		},
	)

	srv.Tool(
		"create_flow",
		"Create a new flow in a project",
		func(_ *server.Context, args createFlowArgs) (any, error) {
			create, err := buildFlowCreate(args)
			if err != nil {
				return nil, err
			}
			s.logger.Info("Creating flow",
				slog.String("flow_name", args.FlowName),
				log.ProjectID(create.ProjectIdentifier))
			payload, err := s.api.CreateFlow(s.ctx, create)
			return toolResult(payload, err)
		},
	)

	srv.Tool(
		"add_phase_to_flow",
		"Add a new phase to a flow",
		func(_ *server.Context, args addPhaseArgs) (any, error) {
			if args.FlowID == "" {
				return nil, errInvalidParams("flow_id is required")
			}
			if args.PhaseName == "" {
				return nil, errInvalidParams("phase_name is required")
			}
			payload, err := s.api.AddPhase(
				s.ctx, api.FlowID(args.FlowID), buildPhaseCreate(args),
			)
			return toolResult(payload, err)
		},
	)

	srv.Tool(
		"add_step_to_phase",
		"Add a new step to a phase",
		func(_ *server.Context, args addStepArgs) (any, error) {
			if args.PhaseID == "" {
				return nil, errInvalidParams("phase_id is required")
			}
			step, err := buildStepCreate(args)
			if err != nil {
				return nil, err
			}
			payload, err := s.api.AddStep(
				s.ctx, api.PhaseID(args.PhaseID), step,
			)
			return toolResult(payload, err)
		},
	)

	srv.Tool(
		"update_step_text",
		"Update the text block of a step; HTML content is allowed",
		func(_ *server.Context, args updateStepTextArgs) (any, error) {
			if args.StepID == "" {
				return nil, errInvalidParams("step_id is required")
			}
			if args.TextContent == "" {
				return nil, errInvalidParams("text_content is required")
			}
			payload, err := s.api.UpdateStepText(
				s.ctx, api.StepID(args.StepID), args.TextContent,
			)
			return toolResult(payload, err)
		},
	)

	srv.Tool(
		"api_spec",
		"Fetch the Siteflow OpenAPI document this server wraps",
		func(_ *server.Context, _ any) (any, error) {
			return toolResult(s.spec, nil)
		},
	)
}

func buildFlowCreate(args createFlowArgs) (api.FlowCreate, error) {
	if args.FlowName == "" {
		return api.FlowCreate{}, errInvalidParams("flow_name is required")
	}
	if args.ProjectID == "" {
		return api.FlowCreate{}, errInvalidParams("project_id is required")
	}

	flowType := api.FlowType(args.FlowType)
	if flowType == "" {
		flowType = api.DefaultFlowType
	}
	if err := flowType.Validate(); err != nil {
		return api.FlowCreate{}, errInvalidParams(err.Error())
	}

	return api.FlowCreate{
		FlowProperties: api.FlowProperties{
			Name:               args.FlowName,
			Type:               flowType,
			Description:        args.Description,
			CategoryIdentifier: args.CategoryID,
			FamilyIdentifier:   api.FamilyID(args.FamilyID),
			FamilyCustomCode:   args.FamilyCustomCode,
			Reference:          args.Reference,
		},
		ProjectIdentifier: api.ProjectID(args.ProjectID),
	}, nil
}

func buildPhaseCreate(args addPhaseArgs) api.PhaseCreate {
	phase := api.PhaseCreate{
		Name: args.PhaseName,
		ManagementProperties: api.PhaseManagement{
			IsEnabled: true,
		},
		InternalInformation: args.PhaseDescription,
	}
	if args.OrderingNumber != nil {
		phase.CustomOrderingNumber = strconv.Itoa(*args.OrderingNumber)
	}
	if args.AutoAdvance || args.CanBeSkipped {
		phase.UsageProperties = &api.PhaseUsage{
			AutoAdvance:  args.AutoAdvance,
			CanBeSkipped: args.CanBeSkipped,
		}
	}
	return phase
}

func buildStepCreate(args addStepArgs) (api.StepCreate, error) {
	if args.StepName == "" {
		return api.StepCreate{}, errInvalidParams("step_name is required")
	}

	blocks := make([]api.ThematicBlock, 0, len(args.ThematicBlocks))
	for _, raw := range args.ThematicBlocks {
		block := api.ThematicBlock(raw)
		if err := block.Validate(); err != nil {
			return api.StepCreate{}, errInvalidParams(err.Error())
		}
		blocks = append(blocks, block)
	}
	if len(blocks) == 0 {
		blocks = api.DefaultThematicBlocks
	}

	step := api.StepCreate{
		Name: args.StepName,
		ManagementProperties: api.StepManagement{
			ListEnabledThematicBlocks: blocks,
		},
		InternalInformation: args.StepDescription,
	}
	if args.OrderingNumber != nil {
		step.CustomOrderingNumber = strconv.Itoa(*args.OrderingNumber)
	}
	return step, nil
}

func errInvalidParams(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, message)
}
