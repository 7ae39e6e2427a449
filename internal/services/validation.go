package services

import (
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/utils"
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}

func checkEmail(field, value string, mandatory bool) error {
	if value == "" {
		if mandatory {
			return domain.ValidationError{Field: field, Msg: "is required"}
		}
		return nil
	}
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 || strings.ContainsAny(value, " \t") {
		return domain.ValidationError{Field: field, Msg: "is not a valid email"}
	}
	return nil
}

func parseDateField(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "is required"}
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "must be a YYYY-MM-DD date", Err: err}
	}
	return t, nil
}

func parseDateTimeField(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "is required"}
	}
	t, err := utils.ParseDateTime(value)
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "must be a date and time", Err: err}
	}
	return t, nil
}

func parseOptionalDateTime(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDateTimeField(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseAmount reads a non-negative currency amount. Empty means zero.
func parseAmount(field string, a utils.AmountText) (utils.Money, error) {
	if a.IsEmpty() {
		return 0, nil
	}
	m, err := utils.ParseMoney(string(a))
	if err != nil {
		return 0, domain.ValidationError{Field: field, Msg: "must be an amount with at most two decimals", Err: err}
	}
	if m < 0 {
		return 0, domain.ValidationError{Field: field, Msg: "must not be negative"}
	}
	return m, nil
}

func parseRequiredAmount(field string, a utils.AmountText) (utils.Money, error) {
	if a.IsEmpty() {
		return 0, domain.ValidationError{Field: field, Msg: "is required"}
	}
	return parseAmount(field, a)
}

func checkLatitude(field string, v *float64) error {
	if v != nil && (*v < -90 || *v > 90) {
		return domain.ValidationError{Field: field, Msg: "must be between -90 and 90"}
	}
	return nil
}

func checkLongitude(field string, v *float64) error {
	if v != nil && (*v < -180 || *v > 180) {
		return domain.ValidationError{Field: field, Msg: "must be between -180 and 180"}
	}
	return nil
}

func checkID(field string, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: field, Msg: "must be a positive id"}
	}
	return nil
}
