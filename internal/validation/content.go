package validation

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	MaxTitleLength         = 200
	MaxCategoryLength      = 100
	MaxEstimatedTimeLength = 50
	MaxImageURLLength      = 500
)

// Required rejects blank values for field.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// MaxLength rejects values longer than limit bytes.
func MaxLength(field, value string, limit int) error {
	if len(value) > limit {
		return fmt.Errorf("%s must not exceed %d characters", field, limit)
	}
	return nil
}

// ValidateTitle checks a job or case study title.
func ValidateTitle(title string) error {
	if err := Required("title", title); err != nil {
		return err
	}
	return MaxLength("title", title, MaxTitleLength)
}

// ValidateImageURL accepts an empty value or an absolute http(s) URL.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	if err := MaxLength("image_url", raw, MaxImageURLLength); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image_url must be an absolute http(s) URL")
	}
	return nil
}

// ValidateReward rejects negative rewards.
func ValidateReward(reward float64) error {
	if reward < 0 {
		return fmt.Errorf("reward must not be negative")
	}
	return nil
}
