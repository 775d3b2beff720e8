package domain

// Company is a tenant. It owns a product catalog and takes part in orders as buyer or seller.
type Company struct {
	CompanyID  string `json:"companyID"`
	Name       string `json:"name"`
	NIP        string `json:"nip"` // Tax identification number, unique
	Address    string `json:"address"`
	IsApproved bool   `json:"isApproved"`
	AuditFields
}
