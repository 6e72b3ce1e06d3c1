package documents

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"salesdesk_backend/internal/events"
	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/store"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/logger"
)

// Archiver stores the original upload before extraction runs.
type Archiver interface {
	Archive(ctx context.Context, leadID string, docType domain.DocumentType, upload Upload) (string, error)
}

const (
	maxAttempts      = 3
	initialRetryWait = time.Second
)

var errExtractionDisabled = errors.New("document extraction backend is not configured")

// Result is the caller-visible outcome of one intake. The shim never
// returns an error: every failure path lands here with a readable message.
type Result struct {
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Data     interface{}    `json:"data,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
	Attempts int            `json:"attempts,omitempty"`
}

// Service runs the document intake flow.
type Service struct {
	store     *store.Store
	extractor Extractor
	archiver  Archiver
	bus       events.Bus
	log       *logger.Logger

	sleep func(time.Duration)
}

// NewService wires the intake shim. archiver may be nil when no object
// storage is configured; extractor may be nil when the backend is off.
func NewService(s *store.Store, extractor Extractor, archiver Archiver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:     s,
		extractor: extractor,
		archiver:  archiver,
		bus:       bus,
		log:       log,
		sleep:     time.Sleep,
	}
}

// ProcessDocument validates, archives, extracts, and dispatches one
// upload. The document slot reads "Processing..." while the remote call
// is in flight; every failure class ends in "Needs Review".
func (s *Service) ProcessDocument(ctx context.Context, leadID string, docType domain.DocumentType, upload Upload) Result {
	lead, ok := s.store.GetLead(leadID)
	if !ok {
		return Result{Error: "lead not found"}
	}

	if err := ValidateUpload(upload, docType); err != nil {
		return Result{Error: err.Error()}
	}

	s.store.UpdateDocumentStatus(leadID, docType, domain.DocProcessing)

	details := map[string]any{}
	if s.archiver != nil {
		if key, err := s.archiver.Archive(ctx, leadID, docType, upload); err != nil {
			s.log.Warn("document archive failed", "lead_id", leadID, "doc_type", string(docType), "error", err.Error())
		} else {
			details["archiveKey"] = key
		}
	}

	if isPhotoType(docType) {
		if takenAt, found := photoTakenAt(upload.Data); found {
			details["photoTakenAt"] = takenAt
		}
	}

	// Spreadsheet menus never touch the extraction backend.
	if docType == domain.DocMenu && isSpreadsheet(upload.MIMEType) {
		return s.processMenuSpreadsheet(ctx, leadID, upload, details)
	}

	raw, attempts, err := s.extractWithRetry(ctx, ExtractionRequest{
		MIMEType:     upload.MIMEType,
		Data:         upload.Data,
		DocumentType: docType,
		CompanyName:  lead.CompanyName,
	})
	if err != nil {
		return s.needsReview(ctx, leadID, docType, err.Error(), attempts, details)
	}

	return s.dispatch(ctx, leadID, docType, raw, attempts, details)
}

func (s *Service) processMenuSpreadsheet(ctx context.Context, leadID string, upload Upload, details map[string]any) Result {
	menu, err := ParseMenuCSV(upload.Data)
	if err != nil {
		return s.needsReview(ctx, leadID, domain.DocMenu, "could not parse the menu file: "+err.Error(), 0, details)
	}

	s.store.UpdateMenu(leadID, menu)
	return s.verified(ctx, leadID, domain.DocMenu, menu, 0, details)
}

// extractWithRetry retries transport failures with exponential backoff.
func (s *Service) extractWithRetry(ctx context.Context, req ExtractionRequest) (json.RawMessage, int, error) {
	if s.extractor == nil {
		return nil, 0, errExtractionDisabled
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := s.extractor.Extract(ctx, req)
		if err == nil {
			return raw, attempt, nil
		}
		lastErr = err
		if attempt < maxAttempts {
			s.sleep(initialRetryWait << (attempt - 1))
		}
	}
	return nil, maxAttempts, lastErr
}

// dispatch admits a typed extraction payload into the lead record.
func (s *Service) dispatch(ctx context.Context, leadID string, docType domain.DocumentType, raw json.RawMessage, attempts int, details map[string]any) Result {
	switch docType {
	case domain.DocCR:
		payload, err := parseCRPayload(raw)
		if err != nil {
			return s.needsReview(ctx, leadID, docType, err.Error(), attempts, details)
		}
		s.store.UpdateExtractedData(leadID, domain.DocCR, payload, nil)
		s.store.UpdateLegalIdentity(leadID,
			deref(payload.OfficialBusinessName), "", deref(payload.TaxNumber), deref(payload.LegalForm))
		return s.verified(ctx, leadID, docType, payload, attempts, details)

	case domain.DocIBAN:
		payload, err := parseIBANPayload(raw)
		if err != nil {
			return s.needsReview(ctx, leadID, docType, err.Error(), attempts, details)
		}
		s.store.UpdateExtractedData(leadID, domain.DocIBAN, nil, payload)
		s.store.UpdateBankDetails(leadID, store.BankDetailsPatch{
			IBAN:             &payload.IBANNumber,
			AccountOwnerName: &payload.AccountOwnerName,
			BankName:         &payload.BankName,
			SwiftCode:        &payload.SwiftCode,
		})
		return s.verified(ctx, leadID, docType, payload, attempts, details)

	case domain.DocLogo, domain.DocCoverPhoto:
		verdict, err := parsePhotoCheck(raw)
		if err != nil {
			return s.needsReview(ctx, leadID, docType, err.Error(), attempts, details)
		}
		if !verdict.IsSuitable {
			details["suggestions"] = verdict.Suggestions
			return s.needsReview(ctx, leadID, docType, verdict.Reason, attempts, details)
		}
		return s.verified(ctx, leadID, docType, verdict, attempts, details)

	case domain.DocStorePhoto:
		verdict, err := parseStorePhotoCheck(raw)
		if err != nil {
			return s.needsReview(ctx, leadID, docType, err.Error(), attempts, details)
		}
		details["confidence"] = verdict.Confidence
		if !verdict.IsMatch {
			return s.needsReview(ctx, leadID, docType, verdict.Reason, attempts, details)
		}
		return s.verified(ctx, leadID, docType, verdict, attempts, details)

	case domain.DocMenu:
		menu, err := parseMenuPayload(raw)
		if err != nil {
			return s.needsReview(ctx, leadID, docType, err.Error(), attempts, details)
		}
		s.store.UpdateMenu(leadID, menu)
		return s.verified(ctx, leadID, docType, menu, attempts, details)
	}

	return s.needsReview(ctx, leadID, docType, "unhandled document type", attempts, details)
}

func (s *Service) verified(ctx context.Context, leadID string, docType domain.DocumentType, data interface{}, attempts int, details map[string]any) Result {
	s.store.UpdateDocumentStatus(leadID, docType, domain.DocVerified)
	s.log.DocumentEvent(leadID, string(docType), string(domain.DocVerified), attempts)
	s.bus.Publish(ctx, events.DocumentVerified{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       leadID,
		DocumentType: string(docType),
		Attempts:     attempts,
	})
	return Result{Success: true, Data: data, Details: details, Attempts: attempts}
}

func (s *Service) needsReview(ctx context.Context, leadID string, docType domain.DocumentType, reason string, attempts int, details map[string]any) Result {
	s.store.UpdateDocumentStatus(leadID, docType, domain.DocNeedsReview)
	s.log.DocumentEvent(leadID, string(docType), string(domain.DocNeedsReview), attempts)
	s.bus.Publish(ctx, events.DocumentNeedsReview{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       leadID,
		DocumentType: string(docType),
		Reason:       reason,
		Attempts:     attempts,
	})
	return Result{Error: reason, Details: details, Attempts: attempts}
}

// DocumentStatuses returns every slot's verification state for a lead.
func (s *Service) DocumentStatuses(ctx context.Context, leadID string) (map[domain.DocumentType]domain.DocumentStatus, error) {
	lead, ok := s.store.GetLead(leadID)
	if !ok {
		return nil, apperr.NotFound("lead not found")
	}
	statuses := make(map[domain.DocumentType]domain.DocumentStatus, len(domain.DocumentTypes))
	for _, docType := range domain.DocumentTypes {
		statuses[docType] = lead.Documents.Get(docType)
	}
	return statuses, nil
}

// SetDocumentStatus writes a slot's status directly. This is the manual
// review path: an operator who checked a "Needs Review" document by hand
// marks it Verified here, or resets a slot for re-upload.
func (s *Service) SetDocumentStatus(ctx context.Context, leadID string, docType domain.DocumentType, status domain.DocumentStatus) error {
	if !domain.IsValidDocumentStatus(status) {
		return apperr.Validation("unknown document status")
	}
	if !s.store.UpdateDocumentStatus(leadID, docType, status) {
		return apperr.NotFound("lead not found")
	}

	s.log.DocumentEvent(leadID, string(docType), string(status), 0)
	if status == domain.DocVerified {
		s.bus.Publish(ctx, events.DocumentVerified{
			BaseEvent:    events.NewBaseEvent(),
			LeadID:       leadID,
			DocumentType: string(docType),
		})
	}
	return nil
}

func isPhotoType(docType domain.DocumentType) bool {
	switch docType {
	case domain.DocLogo, domain.DocCoverPhoto, domain.DocStorePhoto:
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
