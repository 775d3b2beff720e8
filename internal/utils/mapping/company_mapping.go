package mapping

import (
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
)

func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		NIP:         d.NIP,
		Address:     d.Address,
		IsApproved:  d.IsApproved,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		NIP:         m.NIP,
		Address:     m.Address,
		IsApproved:  m.IsApproved,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
