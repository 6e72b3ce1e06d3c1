// Package documents implements the verification document intake flow:
// local validation, CSV menu parsing, remote extraction with retry, and
// dispatch of the results into the lead record.
package documents

import (
	"fmt"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/platform/apperr"
)

// MaxFileSize is the upload ceiling for every document type.
const MaxFileSize = 10 << 20 // 10MB

// Upload is a file received from the operator.
type Upload struct {
	Filename string
	MIMEType string
	Size     int64
	Data     []byte
}

var imageMIMETypes = []string{"image/jpeg", "image/png", "image/webp"}

var spreadsheetMIMETypes = []string{
	"text/csv",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// allowedMIMETypes maps each document slot to the uploads it accepts.
// Legal documents also come in as PDF scans; the menu slot takes either
// a spreadsheet (parsed locally) or a photographed menu.
var allowedMIMETypes = map[domain.DocumentType][]string{
	domain.DocCR:         append([]string{"application/pdf"}, imageMIMETypes...),
	domain.DocIBAN:       append([]string{"application/pdf"}, imageMIMETypes...),
	domain.DocLogo:       imageMIMETypes,
	domain.DocCoverPhoto: imageMIMETypes,
	domain.DocStorePhoto: imageMIMETypes,
	domain.DocMenu:       append(append([]string{}, spreadsheetMIMETypes...), append(imageMIMETypes, "application/pdf")...),
}

// ValidateUpload checks MIME type and size before anything touches the
// network. Returns a typed validation error describing the rejection.
func ValidateUpload(upload Upload, docType domain.DocumentType) error {
	if !domain.IsValidDocumentType(docType) {
		return apperr.Validation(fmt.Sprintf("unknown document type %q", docType))
	}

	if upload.Size > MaxFileSize || int64(len(upload.Data)) > MaxFileSize {
		return apperr.Validation("file exceeds the 10MB size limit")
	}
	if len(upload.Data) == 0 {
		return apperr.Validation("file is empty")
	}

	for _, allowed := range allowedMIMETypes[docType] {
		if upload.MIMEType == allowed {
			return nil
		}
	}
	return apperr.Validation(fmt.Sprintf("file type %q is not accepted for %s", upload.MIMEType, docType))
}

// isSpreadsheet reports whether the upload should be parsed locally
// instead of being sent to the extraction backend.
func isSpreadsheet(mimeType string) bool {
	for _, allowed := range spreadsheetMIMETypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
