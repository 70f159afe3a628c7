package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type ScanType string

const (
	ScanTypeActive  ScanType = "active"
	ScanTypePassive ScanType = "passive"
)

func (t ScanType) Valid() bool {
	return t == ScanTypeActive || t == ScanTypePassive
}

type ScanCategory string

const (
	CategorySocial    ScanCategory = "social"
	CategoryShodan    ScanCategory = "shodan"
	CategoryPasswords ScanCategory = "passwords"
	CategoryCrawl     ScanCategory = "crawl"
	CategoryWeb       ScanCategory = "web"
)

// Categories lists every scan category.
var Categories = []ScanCategory{
	CategorySocial,
	CategoryShodan,
	CategoryPasswords,
	CategoryCrawl,
	CategoryWeb,
}

func (c ScanCategory) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseScanCategory validates a category name.
func ParseScanCategory(s string) (ScanCategory, error) {
	c := ScanCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown scan category %q", s)
	}
	return c, nil
}

// ParseScanType validates a scan type name.
func ParseScanType(s string) (ScanType, error) {
	t := ScanType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown scan type %q", s)
	}
	return t, nil
}

// ScanRecord is a persisted, error-free engine result. Records are never
// updated once written.
type ScanRecord struct {
	ID           string
	URLOrIP      string
	ScanType     ScanType
	ScanCategory ScanCategory
	Results      json.RawMessage // engine payload exactly as received
	UserID       string
	CreatedAt    time.Time
}

// Payload decodes the stored results into the category's payload type.
func (r ScanRecord) Payload() ScanPayload {
	return DecodePayload(r.ScanCategory, r.Results)
}

// ScanFilter narrows a scan listing. Nil fields match everything.
type ScanFilter struct {
	ScanType     *ScanType
	ScanCategory *ScanCategory
	UserID       *string
}

type LogEntry struct {
	ID        string
	Action    string
	UserID    *string // nullable; entries may predate or outlive the user
	Timestamp time.Time
}

// LogFilter narrows a log listing.
type LogFilter struct {
	UserID *string
}

// ScanAction is the log line recorded alongside a saved scan.
func ScanAction(c ScanCategory, target string) string {
	return fmt.Sprintf("%s scan: %s", c, target)
}
