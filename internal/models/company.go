package models

// Company is a tenant row.
type Company struct {
	CompanyID  string `db:"company_id"`
	Name       string `db:"name"`
	NIP        string `db:"nip"` // Unique
	Address    string `db:"address"`
	IsApproved bool   `db:"is_approved"`
	AuditFields
}
