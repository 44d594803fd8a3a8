package importer

const chaseDateFormat = "01/02/2006"

// ChasePreset maps Chase checking CSV exports. The Details column carries
// CREDIT or DEBIT; amounts are signed with debits negative.
func ChasePreset() Preset {
	return Preset{
		Name:        "chase",
		Description: "Chase checking export (Posting Date, Amount, Description, Details)",
		Mapping: ColumnMapping{
			DateColumn:        "Posting Date",
			AmountColumn:      "Amount",
			DescriptionColumn: "Description",
			KindColumn:        "Details",
			IncomeKeyword:     "CREDIT",
			ExpenseKeyword:    "DEBIT",
			DateFormats:       []string{chaseDateFormat},
		},
	}
}
