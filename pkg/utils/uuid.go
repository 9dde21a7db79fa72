package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var invalidFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateBillNo formats a bill number as <prefix>-YYYYMMDD-HHMMSS.
// Two sessions started in the same second share a number.
func GenerateBillNo(prefix string, at time.Time) string {
	return prefix + "-" + at.Format("20060102") + "-" + at.Format("150405")
}

// SanitizeFilename removes characters that are not allowed in file names
// on common platforms: \ / * ? : " < > |
func SanitizeFilename(name string) string {
	return invalidFilenameChars.ReplaceAllString(name, "")
}

// InvoiceFilename builds <brand>_<billNo>_<billTo>_<phone>_<YYYYMMDD>.pptx with
// invalid characters removed.
func InvoiceFilename(brand, billNo, billTo, phone string, on time.Time) string {
	name := strings.Join([]string{brand, billNo, billTo, phone, on.Format("20060102")}, "_") + ".pptx"
	return SanitizeFilename(name)
}
