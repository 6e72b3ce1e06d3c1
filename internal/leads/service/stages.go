package service

import (
	"context"
	"fmt"

	"salesdesk_backend/internal/events"
	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/metrics"
	"salesdesk_backend/internal/leads/scoring"
	"salesdesk_backend/internal/leads/stagegate"
	"salesdesk_backend/internal/leads/transport"
	"salesdesk_backend/platform/apperr"
)

// StageState assembles the stepper view: per-stage completion and
// accessibility plus the current cursor.
func (s *Service) StageState(ctx context.Context, id string) (*transport.StageStateResponse, error) {
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &transport.StageStateResponse{
		CurrentStage: lead.CurrentStage,
		Stages:       make([]transport.StageEntry, 0, len(domain.StageOrder)),
		StageStatus:  make(map[string]string, len(domain.StageOrder)),
	}
	for _, stage := range domain.StageOrder {
		resp.Stages = append(resp.Stages, transport.StageEntry{
			Stage:      stage,
			Status:     lead.StageStatus[stage],
			Complete:   stagegate.IsStageComplete(lead, stage),
			Accessible: stagegate.CanAccessStage(lead, stage),
		})
		resp.StageStatus[string(stage)] = string(lead.StageStatus[stage])
	}
	return resp, nil
}

// CanAccessStage answers whether the stepper may open the given stage.
func (s *Service) CanAccessStage(ctx context.Context, id string, stage domain.Stage) (bool, error) {
	if !domain.IsValidStage(stage) {
		return false, apperr.Validation(fmt.Sprintf("unknown stage %q", stage))
	}
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return false, err
	}
	return stagegate.CanAccessStage(lead, stage), nil
}

// CompleteStage performs the operator-driven transition: mark the stage
// completed, advance the cursor, and put the next stage in progress.
// The gate itself never transitions anything.
func (s *Service) CompleteStage(ctx context.Context, id string, stage domain.Stage) (*transport.StageStateResponse, error) {
	if !domain.IsValidStage(stage) {
		return nil, apperr.Validation(fmt.Sprintf("unknown stage %q", stage))
	}
	if _, err := s.GetLead(ctx, id); err != nil {
		return nil, err
	}

	s.store.UpdateStageStatus(id, stage, domain.StageCompleted)
	next := stage.Next()
	if next != "" {
		s.store.SetCurrentStage(id, next)
		s.store.UpdateStageStatus(id, next, domain.StageInProgress)
	}

	s.log.StageEvent(id, string(stage), string(domain.StageCompleted))
	s.bus.Publish(ctx, events.StageCompleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		Stage:     string(stage),
		NextStage: string(next),
	})

	s.saveSnapshot(ctx)
	return s.StageState(ctx, id)
}

// SetStageStatus writes one stage marker directly (needs-review, resets).
func (s *Service) SetStageStatus(ctx context.Context, id string, stage domain.Stage, status domain.StageStatus) (*transport.StageStateResponse, error) {
	if !domain.IsValidStage(stage) {
		return nil, apperr.Validation(fmt.Sprintf("unknown stage %q", stage))
	}
	if !domain.IsValidStageStatus(status) {
		return nil, apperr.Validation(fmt.Sprintf("unknown stage status %q", status))
	}
	if !s.store.UpdateStageStatus(id, stage, status) {
		return nil, apperr.NotFound("lead not found")
	}
	s.saveSnapshot(ctx)
	return s.StageState(ctx, id)
}

// SetCurrentStage moves the stepper cursor, honoring the access gate.
func (s *Service) SetCurrentStage(ctx context.Context, id string, stage domain.Stage) (*transport.StageStateResponse, error) {
	accessible, err := s.CanAccessStage(ctx, id, stage)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperr.Forbidden("complete the previous stages before finalizing")
	}
	s.store.SetCurrentStage(id, stage)
	s.saveSnapshot(ctx)
	return s.StageState(ctx, id)
}

// LeadInsights bundles the per-lead derived scores.
type LeadInsights struct {
	ActivationScore      int                     `json:"activationScore"`
	MenuHealth           metrics.MenuHealthScore `json:"menuHealth"`
	ConversionLikelihood scoring.Score           `json:"conversionLikelihood"`
}

// Insights computes the per-lead scores.
func (s *Service) Insights(ctx context.Context, id string) (*LeadInsights, error) {
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	return &LeadInsights{
		ActivationScore:      metrics.ActivationScore(lead),
		MenuHealth:           metrics.MenuHealth(lead),
		ConversionLikelihood: s.scorer.Score(lead),
	}, nil
}

// DashboardMetrics is the board-level rollup.
type DashboardMetrics struct {
	PipelineValue   float64                 `json:"pipelineValue"`
	ConversionRate  float64                 `json:"conversionRate"`
	AvgCloseTime    float64                 `json:"avgCloseTimeDays"`
	MonthlyProgress metrics.MonthlyProgress `json:"monthlyProgress"`
}

// Dashboard computes the board-level metrics over all leads.
func (s *Service) Dashboard(ctx context.Context) DashboardMetrics {
	leads := s.store.Snapshot()
	return DashboardMetrics{
		PipelineValue:   metrics.PipelineValue(leads),
		ConversionRate:  metrics.ConversionRate(leads),
		AvgCloseTime:    metrics.AvgCloseTime(leads),
		MonthlyProgress: s.calc.MonthlyProgress(leads),
	}
}

// SelectLead opens a lead for detail editing.
func (s *Service) SelectLead(ctx context.Context, id string) error {
	if !s.store.Select(id) {
		return apperr.NotFound("lead not found")
	}
	return nil
}

// SelectedLead returns the open lead, if any.
func (s *Service) SelectedLead(ctx context.Context) (*domain.Lead, bool) {
	return s.store.Selected()
}

// ClearSelection closes the detail editor.
func (s *Service) ClearSelection(ctx context.Context) {
	s.store.ClearSelection()
}
