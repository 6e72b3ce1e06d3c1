package domain

// Stage is one of the five activation stages, strictly ordered.
type Stage string

const (
	StageVendorProfile  Stage = "vendor-profile"
	StageLegalIdentity  Stage = "legal-identity"
	StageStorefrontMenu Stage = "storefront-menu"
	StagePackageBuilder Stage = "package-builder"
	StageFinalizeSign   Stage = "finalize-sign"
)

// StageOrder lists the activation stages in workflow order.
var StageOrder = []Stage{
	StageVendorProfile,
	StageLegalIdentity,
	StageStorefrontMenu,
	StagePackageBuilder,
	StageFinalizeSign,
}

// IsValidStage reports whether s is one of the five activation stages.
func IsValidStage(s Stage) bool {
	return s.Index() >= 0
}

// Index returns the stage's position in the workflow, -1 if unknown.
func (s Stage) Index() int {
	for i, stage := range StageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage, or "" when s is terminal or unknown.
func (s Stage) Next() Stage {
	idx := s.Index()
	if idx < 0 || idx == len(StageOrder)-1 {
		return ""
	}
	return StageOrder[idx+1]
}

// StageStatus is the operator-driven progress marker per stage.
type StageStatus string

const (
	StagePending     StageStatus = "pending"
	StageInProgress  StageStatus = "in-progress"
	StageCompleted   StageStatus = "completed"
	StageNeedsReview StageStatus = "needs-review"
)

// IsValidStageStatus reports whether s is a known stage status.
func IsValidStageStatus(s StageStatus) bool {
	switch s {
	case StagePending, StageInProgress, StageCompleted, StageNeedsReview:
		return true
	}
	return false
}

// NewStageStatusMap returns the intake default: every stage pending.
func NewStageStatusMap() map[Stage]StageStatus {
	statuses := make(map[Stage]StageStatus, len(StageOrder))
	for _, stage := range StageOrder {
		statuses[stage] = StagePending
	}
	return statuses
}
