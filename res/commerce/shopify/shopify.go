package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"partner-portal-api/res/commerce"
)

const apiVersion = "2025-07"

// ShopifyService implements the CommerceService interface against the
// Shopify Admin GraphQL API.
type ShopifyService struct {
	storeDomain string
	accessToken string
	logger      *log.Logger
	httpClient  *http.Client
}

// New creates a new Shopify Admin API client
func New(storeDomain, accessToken string, timeout time.Duration, logger *log.Logger) commerce.CommerceService {
	return &ShopifyService{
		storeDomain: storeDomain,
		accessToken: accessToken,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

const customerCreateMutation = `mutation createCustomerAndAddress($input: CustomerInput!) {
  customerCreate(input: $input) {
    customer {
      id
      email
      displayName
    }
    userErrors {
      field
      message
    }
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type customerCreateResponse struct {
	Data struct {
		CustomerCreate struct {
			Customer *struct {
				ID          string `json:"id"`
				Email       string `json:"email"`
				DisplayName string `json:"displayName"`
			} `json:"customer"`
			UserErrors []commerce.UserError `json:"userErrors"`
		} `json:"customerCreate"`
	} `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

// CreateCustomer mirrors one contact into Shopify via customerCreate.
// The contact is tagged B2B together with the business category, and the
// primary contact additionally with "primary-contact".
func (s *ShopifyService) CreateCustomer(ctx context.Context, input commerce.CustomerInput) (string, []commerce.UserError, error) {
	tags := fmt.Sprintf("B2B, %s", input.BusinessCategory)
	if input.IsMain {
		tags += ", primary-contact"
	}

	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"email":     input.Email,
			"phone":     input.Phone,
			"firstName": input.FirstName,
			"lastName":  input.LastName,
			"tags":      tags,
			"addresses": []map[string]interface{}{
				{
					"address1": input.Address1,
					"city":     input.City,
					"province": input.Province,
					"phone":    input.BusinessPhone,
					"zip":      input.Zip,
					"country":  "US",
					"company":  input.Company,
				},
			},
		},
	}

	var response customerCreateResponse
	if err := s.execute(ctx, graphqlRequest{Query: customerCreateMutation, Variables: variables}, &response); err != nil {
		return "", nil, err
	}

	if len(response.Errors) > 0 {
		return "", nil, fmt.Errorf("shopify API error: %s", response.Errors[0].Message)
	}

	result := response.Data.CustomerCreate
	if len(result.UserErrors) > 0 {
		return "", result.UserErrors, nil
	}
	if result.Customer == nil {
		return "", nil, fmt.Errorf("shopify API returned no customer and no errors")
	}

	s.logger.Printf("[SHOPIFY_CUSTOMER_CREATED] email=%s id=%s", input.Email, result.Customer.ID)
	return result.Customer.ID, nil, nil
}

// execute posts a GraphQL request to the Admin API and decodes the response.
func (s *ShopifyService) execute(ctx context.Context, request graphqlRequest, out interface{}) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("error marshaling graphql request: %w", err)
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", s.storeDomain, apiVersion)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	s.logger.Printf("[SHOPIFY_RESPONSE] status=%d body_length=%d", resp.StatusCode, len(body))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify API returned status %d: %s", resp.StatusCode, sanitizeResponseBody(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing shopify response: %w", err)
	}

	return nil
}

// CustomerIDTail extracts the numeric tail of a customer gid
// (gid://shopify/Customer/123 -> 123), the form stored on account managers.
func CustomerIDTail(gid string) string {
	if idx := strings.LastIndex(gid, "/"); idx >= 0 {
		return gid[idx+1:]
	}
	return gid
}

// sanitizeResponseBody limits response bodies for safe inclusion in errors
func sanitizeResponseBody(body string) string {
	const maxLength = 200
	cleaned := strings.ReplaceAll(body, "\x00", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\n", "")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxLength {
		return cleaned[:maxLength] + "..."
	}
	return cleaned
}
