package models

import (
	"errors"
	"strings"
)

type RegisterCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

func (r RegisterCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !strings.Contains(email, "@") {
		errs = append(errs, "email is not valid")
	}

	pin := strings.TrimSpace(r.Pin)
	if len(pin) < 4 || len(pin) > 6 || !digitsOnly(pin) {
		errs = append(errs, "pin must be 4 to 6 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type RegisterCustomerResponse struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

type GetCustomerResponse struct {
	CustomerID     string   `json:"customerId"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	AccountNumbers []string `json:"accountNumbers"`
}

type VerifyPinRequest struct {
	CustomerID string `json:"customerId"`
	Pin        string `json:"pin"`
}

func (r VerifyPinRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if strings.TrimSpace(r.Pin) == "" {
		errs = append(errs, "pin is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type VerifyPinResponse struct {
	CustomerID string `json:"customerId"`
	IsValidPin bool   `json:"isValidPin"`
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
