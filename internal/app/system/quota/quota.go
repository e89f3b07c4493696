// internal/app/system/quota/quota.go

// Package quota enforces the storage budget for uploaded images: a total
// byte limit, a per-file limit, and per-folder image caps.
package quota

import (
	"fmt"
	"math"

	"github.com/dalemusser/glowsite/internal/domain/models"
)

// Storage limits
const (
	MaxTotalBytes = 500 * 1024 * 1024 // 500 MB
	MaxFileBytes  = 5 * 1024 * 1024   // 5 MB per upload
)

// Per-folder image caps. Folders without a cap are unlimited (only the
// total byte limit applies).
var folderLimits = map[string]int64{
	models.FolderGallery:      75,
	models.FolderServices:     10,
	models.FolderTestimonials: 20,
	models.FolderPromotions:   3,
}

// Warning levels, mildest to most severe.
const (
	LevelSafe     = "safe"
	LevelInfo     = "info"
	LevelWarning  = "warning"
	LevelCritical = "critical"
	LevelBlocked  = "blocked"
)

// Usage thresholds for the warning levels.
const (
	thresholdInfo     = 0.60
	thresholdWarning  = 0.70
	thresholdCritical = 0.80
	thresholdUrgent   = 0.90
	thresholdFull     = 0.95
)

// Stats summarizes storage usage for the admin dashboard.
type Stats struct {
	UsedBytes      int64            `json:"usedBytes"`
	MaxBytes       int64            `json:"maxBytes"`
	UsedFormatted  string           `json:"usedFormatted"`
	MaxFormatted   string           `json:"maxFormatted"`
	UsedPercent    float64          `json:"usedPercent"`
	Level          string           `json:"level"`
	Message        string           `json:"message"`
	FolderCounts   map[string]int64 `json:"folderCounts"`
	FolderLimits   map[string]int64 `json:"folderLimits"`
	UploadsBlocked bool             `json:"uploadsBlocked"`
}

// BuildStats computes usage stats from the total byte count and per-folder
// image counts.
func BuildStats(usedBytes int64, folderCounts map[string]int64) Stats {
	ratio := float64(usedBytes) / float64(MaxTotalBytes)
	level, message := classify(ratio)

	limits := make(map[string]int64, len(folderLimits))
	for folder, limit := range folderLimits {
		limits[folder] = limit
	}
	if folderCounts == nil {
		folderCounts = map[string]int64{}
	}

	return Stats{
		UsedBytes:      usedBytes,
		MaxBytes:       MaxTotalBytes,
		UsedFormatted:  FormatBytes(usedBytes),
		MaxFormatted:   FormatBytes(MaxTotalBytes),
		UsedPercent:    ratio * 100,
		Level:          level,
		Message:        message,
		FolderCounts:   folderCounts,
		FolderLimits:   limits,
		UploadsBlocked: ratio >= thresholdFull,
	}
}

func classify(ratio float64) (level, message string) {
	switch {
	case ratio >= thresholdFull:
		return LevelBlocked, "LIMIT ERREICHT! Bitte Bilder löschen um weiter hochzuladen."
	case ratio >= thresholdUrgent:
		return LevelCritical, "KRITISCH! Nur noch wenig Speicher frei. Bitte JETZT Bilder löschen!"
	case ratio >= thresholdCritical:
		return LevelWarning, "Warnung: Speicher wird knapp. Bitte bald Bilder aufräumen."
	case ratio >= thresholdWarning:
		return LevelInfo, "Info: Bitte demnächst alte Bilder löschen."
	case ratio >= thresholdInfo:
		return LevelInfo, "Speicher gut genutzt. Alles im grünen Bereich."
	default:
		return LevelSafe, ""
	}
}

// folderFullMessages are the rejections shown when a folder cap is hit.
var folderFullMessages = map[string]string{
	models.FolderGallery:      "Maximum 75 Galerie-Bilder erreicht. Bitte zuerst alte Bilder löschen.",
	models.FolderServices:     "Maximum 10 Service-Bilder erreicht.",
	models.FolderTestimonials: "Maximum 20 Testimonial-Bilder erreicht.",
	models.FolderPromotions:   "Maximum 3 Aktions-Bilder erreicht.",
}

// CanUploadToFolder checks whether one more file of fileSize bytes may be
// uploaded into folder. Returns a user-facing reason when rejected.
func CanUploadToFolder(folder string, folderCount, usedBytes, fileSize int64) (bool, string) {
	if fileSize > MaxFileBytes {
		return false, fmt.Sprintf("Datei zu groß (max. %s).", FormatBytes(MaxFileBytes))
	}

	if float64(usedBytes)/float64(MaxTotalBytes) >= thresholdFull || usedBytes+fileSize > MaxTotalBytes {
		return false, "Speicherlimit erreicht (500 MB). Bitte zuerst Bilder löschen."
	}

	if limit, ok := folderLimits[folder]; ok && folderCount >= limit {
		return false, folderFullMessages[folder]
	}

	return true, ""
}

// FolderLimit returns the image cap for a folder and whether one exists.
func FolderLimit(folder string) (int64, bool) {
	limit, ok := folderLimits[folder]
	return limit, ok
}

// FormatBytes renders a byte count the way the admin UI shows it: base-1024
// units, rounded to one decimal, with a whole-number result shown without
// the decimal ("500 MB", not "500.0 MB").
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}

	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}

	value := math.Round(float64(n)/math.Pow(1024, float64(i))*10) / 10
	if value == math.Trunc(value) {
		return fmt.Sprintf("%.0f %s", value, units[i])
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}
