package contracts

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const subjectContractFmt = "Your activation contract for %s is ready to sign"

type contractEmailData struct {
	Title             string
	Heading           string
	CTALabel          string
	CTAURL            string
	ContactName       string
	CompanyName       string
	OfficialLegalName string
	CRNumber          string
	TaxNumber         string
	TariffID          string
	MenuCategories    int
	MenuItems         int
}

func renderContractEmail(data contractEmailData) (string, error) {
	tmpl, err := template.New("base.html").ParseFS(templateFS,
		"templates/base.html", "templates/contract.html")
	if err != nil {
		return "", fmt.Errorf("parse contract template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute contract template: %w", err)
	}
	return buf.String(), nil
}
