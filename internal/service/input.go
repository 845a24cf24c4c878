package service

import (
	"net/url"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// patch collects the columns of a partial update.
type patch map[string]interface{}

// text sets column to the trimmed value when the field was supplied.
func (p patch) text(column string, value *string) {
	if value != nil {
		p[column] = strings.TrimSpace(*value)
	}
}

func (p patch) number(column string, value *int) {
	if value != nil {
		p[column] = *value
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func derefInt(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

// requireText rejects a blank required field. creating reports whether the
// field must be present; on update it is only checked when supplied.
func requireText(entity, field string, value *string, creating bool) error {
	if value == nil {
		if creating {
			return invalid(entity, field, "%s %s is required", entity, field)
		}
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return invalid(entity, field, "%s %s is required", entity, field)
	}
	return nil
}

// checkColor accepts an empty value or a CSS hex color.
func checkColor(entity, field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" || hexColorPattern.MatchString(value) {
		return nil
	}
	return invalid(entity, field, "%s must be a hex color like #1E3A8A", field)
}

// checkURL accepts an empty value, a site-relative path or an http(s) URL.
func checkURL(entity, field string, value *string) error {
	if value == nil {
		return nil
	}
	raw := strings.TrimSpace(*value)
	if raw == "" || strings.HasPrefix(raw, "/") {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return invalid(entity, field, "%s must be an http(s) URL or a site path", field)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
