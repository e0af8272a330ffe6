package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// DefaultLabelTemplate is the label shown in the search box after a selection
const DefaultLabelTemplate = "{first_name} {last_name} ({business_partner_id})"

// labelFields lists the placeholders a label template may use
var labelFields = []string{
	"first_name",
	"last_name",
	"business_partner_id",
	"email",
	"phone",
	"segment",
	"account_number",
	"address",
}

// LabelService renders the selection label from a placeholder template
type LabelService interface {
	Render(customer *models.Customer) (string, error)
	Template() string
}

// TemplateService handles template rendering and validation
type TemplateService interface {
	Render(template string, customer *models.Customer) (string, error)
	ValidateTemplate(template string) error
	ExtractPlaceholders(template string) []string
}

type templateService struct {
	placeholderPattern *regexp.Regexp
}

// NewTemplateService creates a new template service
func NewTemplateService() TemplateService {
	return &templateService{
		placeholderPattern: regexp.MustCompile(`\{([a-z_]+)\}`),
	}
}

// Render replaces placeholders in template with customer data.
// The first contract account and the first premise stand in for
// account_number and address; missing ones render as empty strings.
func (s *templateService) Render(template string, customer *models.Customer) (string, error) {
	if customer == nil {
		return "", models.ErrInvalidInput("customer cannot be nil")
	}

	fieldMap := map[string]string{
		"first_name":          customer.FirstName,
		"last_name":           customer.LastName,
		"business_partner_id": customer.BusinessPartnerID,
		"email":               customer.Email,
		"phone":               customer.Phone,
		"segment":             string(customer.Segment),
	}
	if len(customer.ContractAccounts) > 0 {
		fieldMap["account_number"] = customer.ContractAccounts[0].AccountNumber
	}
	if len(customer.Premises) > 0 {
		fieldMap["address"] = customer.Premises[0].Address
	}

	result := s.placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		return fieldMap[strings.Trim(match, "{}")]
	})

	return strings.TrimSpace(result), nil
}

// ValidateTemplate checks if template syntax is valid
func (s *templateService) ValidateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return models.ErrInvalidInput("template cannot be empty")
	}

	valid := make(map[string]bool, len(labelFields))
	for _, f := range labelFields {
		valid[f] = true
	}

	var invalidPlaceholders []string
	for _, placeholder := range s.ExtractPlaceholders(template) {
		if !valid[placeholder] {
			invalidPlaceholders = append(invalidPlaceholders, placeholder)
		}
	}

	if len(invalidPlaceholders) > 0 {
		return models.ErrInvalidInput(
			fmt.Sprintf("invalid placeholders: %s. Valid placeholders are: %s",
				strings.Join(invalidPlaceholders, ", "), strings.Join(labelFields, ", ")),
		)
	}

	return nil
}

// ExtractPlaceholders returns all placeholders found in template
func (s *templateService) ExtractPlaceholders(template string) []string {
	matches := s.placeholderPattern.FindAllStringSubmatch(template, -1)
	placeholders := make([]string, 0, len(matches))

	for _, match := range matches {
		if len(match) > 1 {
			placeholders = append(placeholders, match[1])
		}
	}

	return placeholders
}

type labelService struct {
	templates TemplateService
	template  string
}

// NewLabelService validates template once so that rendering cannot fail on syntax
func NewLabelService(templates TemplateService, template string) (LabelService, error) {
	if template == "" {
		template = DefaultLabelTemplate
	}
	if err := templates.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("invalid label template: %w", err)
	}
	return &labelService{templates: templates, template: template}, nil
}

func (l *labelService) Render(customer *models.Customer) (string, error) {
	return l.templates.Render(l.template, customer)
}

func (l *labelService) Template() string {
	return l.template
}
