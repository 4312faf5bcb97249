package media

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameLength = 80

var unsafeRun = regexp.MustCompile(`[^a-z0-9._-]+`)

// SanitizeName lowercases name, collapses runs of other characters into "-",
// and caps the result at 80 characters.
func SanitizeName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = unsafeRun.ReplaceAllString(strings.ToLower(name), "-")
	name = strings.Trim(name, "-.")
	if len(name) > maxNameLength {
		name = strings.Trim(name[:maxNameLength], "-.")
	}
	if name == "" {
		return "file"
	}
	return name
}

// StoredName is "<unix-ms>-<8 hex>-<sanitized name>". Names are not hashed,
// and uploading the same file twice stores two objects.
func StoredName(original string, now time.Time) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), random, SanitizeName(original))
}
