package domain

// Clone returns a deep copy of the lead. The store hands out and keeps
// only clones so callers can never alias its internal state.
func (l *Lead) Clone() *Lead {
	if l == nil {
		return nil
	}

	clone := *l

	if l.Contacts != nil {
		clone.Contacts = make([]Contact, len(l.Contacts))
		copy(clone.Contacts, l.Contacts)
	}

	if l.OpeningHours != nil {
		clone.OpeningHours = make(OpeningHours, len(l.OpeningHours))
		for day, hours := range l.OpeningHours {
			clone.OpeningHours[day] = hours
		}
	}

	if l.BankDetails != nil {
		bank := *l.BankDetails
		clone.BankDetails = &bank
	}

	if l.ExtractedData != nil {
		extracted := ExtractedData{}
		if l.ExtractedData.CR != nil {
			cr := CRExtraction{
				OfficialBusinessName: cloneStringPtr(l.ExtractedData.CR.OfficialBusinessName),
				OwnerName:            cloneStringPtr(l.ExtractedData.CR.OwnerName),
				TaxNumber:            cloneStringPtr(l.ExtractedData.CR.TaxNumber),
				LegalForm:            cloneStringPtr(l.ExtractedData.CR.LegalForm),
			}
			extracted.CR = &cr
		}
		if l.ExtractedData.IBAN != nil {
			iban := *l.ExtractedData.IBAN
			extracted.IBAN = &iban
		}
		clone.ExtractedData = &extracted
	}

	if l.Menu != nil {
		clone.Menu = make(Menu, len(l.Menu))
		for category, items := range l.Menu {
			copied := make([]MenuItem, len(items))
			copy(copied, items)
			clone.Menu[category] = copied
		}
	}

	if l.StageStatus != nil {
		clone.StageStatus = make(map[Stage]StageStatus, len(l.StageStatus))
		for stage, status := range l.StageStatus {
			clone.StageStatus[stage] = status
		}
	}

	if l.PackageConfig != nil {
		config := PackageConfiguration{TariffID: l.PackageConfig.TariffID}
		if l.PackageConfig.Commissions != nil {
			config.Commissions = make([]Commission, len(l.PackageConfig.Commissions))
			copy(config.Commissions, l.PackageConfig.Commissions)
		}
		if l.PackageConfig.AdditionalCharges != nil {
			config.AdditionalCharges = make([]AdditionalCharge, len(l.PackageConfig.AdditionalCharges))
			copy(config.AdditionalCharges, l.PackageConfig.AdditionalCharges)
		}
		if l.PackageConfig.Assets != nil {
			config.Assets = make([]Asset, len(l.PackageConfig.Assets))
			copy(config.Assets, l.PackageConfig.Assets)
		}
		clone.PackageConfig = &config
	}

	if l.StatusUpdatedAt != nil {
		at := *l.StatusUpdatedAt
		clone.StatusUpdatedAt = &at
	}
	if l.LastContact != nil {
		at := *l.LastContact
		clone.LastContact = &at
	}

	return &clone
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
