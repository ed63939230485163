package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Form result statuses
const (
	FormStatusSuccess = "success"
	FormStatusError   = "error"
)

// FormSubmission is an organization intake form as posted by the form sync
type FormSubmission struct {
	CampName           string `json:"camp_name" validate:"required,max=140"`
	OrganizationType   string `json:"organization_type" validate:"omitempty,oneof=Camp 'Other Organization'"`
	FirstDayOfCamp     string `json:"first_day_of_camp" validate:"required"`
	ContactName        string `json:"contact_name" validate:"omitempty,max=140"`
	Email              string `json:"email" validate:"omitempty,email"`
	Phone              string `json:"phone" validate:"omitempty,max=40"`
	Registration       string `json:"registration" validate:"omitempty,max=140"`
	Association        string `json:"association" validate:"omitempty,max=140"`
	TaxStatus          string `json:"tax_status" validate:"omitempty,oneof=Exempt Taxed Pending"`
	TaxExemptionNumber string `json:"tax_exemption_number" validate:"omitempty,max=140"`
	StreetAddressLine1 string `json:"street_address_line_1"`
	StreetAddressLine2 string `json:"street_address_line_2"`
	City               string `json:"city"`
	State              string `json:"state"`
	ZipCode            string `json:"zip_code"`
	Country            string `json:"country"`
	Timezone           string `json:"timezone"`
}

// FormResult is returned to the form sync. Failures are reported in the
// result rather than as errors so the caller always gets a body to log.
type FormResult struct {
	Status  string   `json:"status"`
	Name    string   `json:"name,omitempty"`
	Message string   `json:"message,omitempty"`
	Notices []Notice `json:"notices,omitempty"`
}

// FormService creates organizations from intake form submissions
type FormService struct {
	orgs          organization.OrganizationRepository
	organizations *OrganizationService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewFormService creates a new FormService
func NewFormService(orgs organization.OrganizationRepository, organizations *OrganizationService, logger *zap.Logger) *FormService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &FormService{
		orgs:          orgs,
		organizations: organizations,
		validate:      validate,
		logger:        logger,
	}
}

// CreateOrganizationFromForm creates the organization named by the form.
// A submission for an organization that already exists succeeds without
// changing anything.
func (s *FormService) CreateOrganizationFromForm(ctx context.Context, form FormSubmission) FormResult {
	ctx = WithNotices(ctx)
	ctx = logger.WithDocument(ctx, "Form", form.CampName)

	org, err := s.build(form)
	if err != nil {
		logger.L(ctx).Warn("rejected form submission", zap.Error(err))
		return FormResult{Status: FormStatusError, Message: err.Error()}
	}

	existing, err := s.orgs.FindByName(ctx, org.Kind, org.Name)
	switch {
	case err == nil:
		logger.L(ctx).Info("organization from form already exists", zap.String("organization", existing.Name))
		return FormResult{
			Status:  FormStatusSuccess,
			Name:    existing.Name,
			Message: fmt.Sprintf("%s '%s' already exists", existing.Kind, existing.Name),
		}
	case !errors.Is(err, shared.ErrNotFound):
		logger.L(ctx).Error("form lookup failed", zap.Error(err))
		return FormResult{Status: FormStatusError, Message: err.Error()}
	}

	stored, _, err := s.organizations.save(ctx, org, saveOptions{register: true})
	if err != nil {
		logger.L(ctx).Error("form submission failed", zap.Error(err))
		return FormResult{Status: FormStatusError, Message: err.Error()}
	}

	logger.L(ctx).Info("organization created from form", zap.String("organization", stored.Name))
	return FormResult{
		Status:  FormStatusSuccess,
		Name:    stored.Name,
		Notices: NoticesFrom(ctx),
	}
}

func (s *FormService) build(form FormSubmission) (*organization.Organization, error) {
	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid '%s': failed %s", verrs[0].Field(), verrs[0].Tag())
		}
		return nil, err
	}

	firstDay, err := ParseFormDate(form.FirstDayOfCamp)
	if err != nil {
		return nil, err
	}

	kind := organization.KindCamp
	if form.OrganizationType != "" {
		kind = organization.Kind(form.OrganizationType)
	}
	org, err := organization.NewOrganization(kind, form.CampName)
	if err != nil {
		return nil, err
	}
	org.SetContact(form.ContactName, form.Email, form.Phone)
	org.FirstDayOfCamp = &firstDay
	org.RegistrationSoftware = strings.TrimSpace(form.Registration)
	org.Association = strings.TrimSpace(form.Association)
	org.TaxStatus = organization.TaxStatus(form.TaxStatus)
	org.TaxExemptionNumber = strings.TrimSpace(form.TaxExemptionNumber)
	org.ShippingAddress = valueobject.Address{
		Street1: form.StreetAddressLine1,
		Street2: form.StreetAddressLine2,
		City:    form.City,
		State:   form.State,
		ZipCode: form.ZipCode,
		Country: form.Country,
	}.Normalized()
	if kind.IsCamp() {
		// the submission is the camp's settings record
		org.SettingsLink = org.Name
	}
	return org, nil
}

// formDateLayouts are tried in order. The first two are the Google Forms
// renderings of a JavaScript Date.
var formDateLayouts = []string{
	"Mon Jan 02 15:04:05 GMT-0700 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	time.RFC3339,
	"2006-01-02",
}

// zoneSuffix matches the " (Eastern Daylight Time)" tail browsers append
var zoneSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// ParseFormDate parses a form date and returns the calendar day it names
func ParseFormDate(value string) (time.Time, error) {
	value = strings.TrimSpace(zoneSuffix.ReplaceAllString(value, ""))
	if value == "" {
		return time.Time{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "Missing 'first_day_of_camp'")
	}
	for _, layout := range formDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, shared.NewDomainError(shared.ErrInvalidInput.Code,
		fmt.Sprintf("Invalid date format for first_day_of_camp: %s", value))
}
