package postgres

import (
	affiliatedomain "github.com/markethub/admin-backend/internal/domain/affiliate"
	analyticsdomain "github.com/markethub/admin-backend/internal/domain/analytics"
	auditdomain "github.com/markethub/admin-backend/internal/domain/audit"
	categorydomain "github.com/markethub/admin-backend/internal/domain/category"
	documentdomain "github.com/markethub/admin-backend/internal/domain/document"
	loanpartnerdomain "github.com/markethub/admin-backend/internal/domain/loanpartner"
	productdomain "github.com/markethub/admin-backend/internal/domain/product"
	roledomain "github.com/markethub/admin-backend/internal/domain/role"
	vendordomain "github.com/markethub/admin-backend/internal/domain/vendor"
	"github.com/markethub/admin-backend/internal/jobs"
)

var (
	_ vendordomain.Repository        = (*VendorRepository)(nil)
	_ affiliatedomain.Repository     = (*AffiliateRepository)(nil)
	_ productdomain.Repository       = (*ProductRepository)(nil)
	_ productdomain.CategoryChecker  = (*CategoryRepository)(nil)
	_ categorydomain.Repository      = (*CategoryRepository)(nil)
	_ loanpartnerdomain.Repository   = (*LoanPartnerRepository)(nil)
	_ roledomain.Repository          = (*RoleRepository)(nil)
	_ documentdomain.Repository      = (*DocumentRepository)(nil)
	_ auditdomain.Repository         = (*AuditRepository)(nil)
	_ vendordomain.OutboxRepository  = (*OutboxRepository)(nil)
	_ jobs.OutboxRepository          = (*OutboxRepository)(nil)
	_ analyticsdomain.Repository     = (*AnalyticsRepository)(nil)
	_ analyticsdomain.ProductCounter = (*ProductRepository)(nil)
)
