package router

import (
	"github.com/campmanager/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP handlers served by the API
type Handlers struct {
	Lead         *handler.LeadHandler
	Organization *handler.OrganizationHandler
	Onboarding   *handler.OnboardingHandler
	Customer     *handler.CustomerHandler
	Form         *handler.FormHandler
	Finance      *handler.FinanceHandler
	System       *handler.SystemHandler
}

// Setup mounts /health and every /api/v1 route on engine
func Setup(engine *gin.Engine, h Handlers) *Router {
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))

	leads := NewDomainGroup("lead", "/leads")
	leads.POST("", h.Lead.Create)
	leads.GET("/:id", h.Lead.GetByID)
	leads.PUT("/:id", h.Lead.Update)

	organizations := NewDomainGroup("organization", "/organizations")
	organizations.POST("", h.Organization.Create)
	organizations.GET("", h.Organization.List)
	organizations.GET("/:id", h.Organization.GetByID)
	organizations.PUT("/:id", h.Organization.Update)

	onboardings := NewDomainGroup("onboarding", "/onboardings")
	onboardings.POST("", h.Onboarding.Create)
	onboardings.GET("", h.Onboarding.List)
	onboardings.GET("/:id", h.Onboarding.GetByID)
	onboardings.PUT("/:id", h.Onboarding.Update)

	customers := NewDomainGroup("customer", "/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PUT("/:id", h.Customer.Update)

	forms := NewDomainGroup("form", "/forms")
	forms.POST("/organizations", h.Form.CreateOrganization)

	finance := NewDomainGroup("finance", "/finance")
	finance.POST("/receivable-accounts", h.Finance.EnsureReceivableAccount)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	r.Register(leads).
		Register(organizations).
		Register(onboardings).
		Register(customers).
		Register(forms).
		Register(finance).
		Register(system)
	r.Setup()
	return r
}
