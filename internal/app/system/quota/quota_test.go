package quota

import (
	"strings"
	"testing"

	"github.com/dalemusser/glowsite/internal/domain/models"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1126, "1.1 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{500 * 1024 * 1024, "500 MB"},
		{2 * 1024 * 1024 * 1024, "2 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatBytes(tt.n)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestBuildStats_Levels(t *testing.T) {
	tests := []struct {
		name        string
		usedBytes   int64
		wantLevel   string
		wantBlocked bool
	}{
		{"empty", 0, LevelSafe, false},
		{"half full", MaxTotalBytes / 2, LevelSafe, false},
		{"sixty percent", MaxTotalBytes * 61 / 100, LevelInfo, false},
		{"seventy percent", MaxTotalBytes * 71 / 100, LevelInfo, false},
		{"eighty percent", MaxTotalBytes * 81 / 100, LevelWarning, false},
		{"ninety percent", MaxTotalBytes * 91 / 100, LevelCritical, false},
		{"just under blocked", MaxTotalBytes * 9499 / 10000, LevelCritical, false},
		{"at blocked threshold", MaxTotalBytes * 96 / 100, LevelBlocked, true},
		{"over quota", MaxTotalBytes + 1, LevelBlocked, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := BuildStats(tt.usedBytes, nil)
			if stats.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s (used %.2f%%)", stats.Level, tt.wantLevel, stats.UsedPercent)
			}
			if stats.UploadsBlocked != tt.wantBlocked {
				t.Errorf("UploadsBlocked = %v, want %v", stats.UploadsBlocked, tt.wantBlocked)
			}
		})
	}
}

func TestBuildStats_WellUsedBand(t *testing.T) {
	// Between 60% and 70% the level is already "info" but the message is
	// still the reassuring one.
	stats := BuildStats(MaxTotalBytes*65/100, nil)
	if stats.Level != LevelInfo {
		t.Errorf("Level = %s, want %s", stats.Level, LevelInfo)
	}
	if stats.Message != "Speicher gut genutzt. Alles im grünen Bereich." {
		t.Errorf("Message = %q", stats.Message)
	}
}

func TestBuildStats_Fields(t *testing.T) {
	counts := map[string]int64{models.FolderGallery: 10}
	stats := BuildStats(1024, counts)

	if stats.UsedBytes != 1024 {
		t.Errorf("UsedBytes = %d, want 1024", stats.UsedBytes)
	}
	if stats.MaxBytes != MaxTotalBytes {
		t.Errorf("MaxBytes = %d, want %d", stats.MaxBytes, int64(MaxTotalBytes))
	}
	if stats.UsedFormatted != "1 KB" {
		t.Errorf("UsedFormatted = %q", stats.UsedFormatted)
	}
	if stats.MaxFormatted != "500 MB" {
		t.Errorf("MaxFormatted = %q", stats.MaxFormatted)
	}
	if stats.FolderCounts[models.FolderGallery] != 10 {
		t.Error("FolderCounts should carry the input counts")
	}
	if stats.FolderLimits[models.FolderGallery] != 75 {
		t.Errorf("FolderLimits[gallery] = %d, want 75", stats.FolderLimits[models.FolderGallery])
	}
}

func TestCanUploadToFolder_FileTooLarge(t *testing.T) {
	ok, msg := CanUploadToFolder(models.FolderGallery, 0, 0, MaxFileBytes+1)
	if ok {
		t.Error("upload over the file size cap should be rejected")
	}
	if !strings.Contains(msg, "Datei zu groß") {
		t.Errorf("message = %q, want file size rejection", msg)
	}
}

func TestCanUploadToFolder_QuotaFull(t *testing.T) {
	used := int64(float64(MaxTotalBytes) * 0.96)
	ok, msg := CanUploadToFolder(models.FolderGallery, 0, used, 100)
	if ok {
		t.Error("upload at 95% usage should be rejected")
	}
	if !strings.Contains(msg, "Speicherlimit erreicht") {
		t.Errorf("message = %q, want quota rejection", msg)
	}
}

func TestCanUploadToFolder_WouldExceedTotal(t *testing.T) {
	used := int64(float64(MaxTotalBytes) * 0.90)
	remaining := MaxTotalBytes - used
	ok, _ := CanUploadToFolder(models.FolderGeneral, 0, used, remaining+1)
	if ok {
		t.Error("upload that would exceed the total quota should be rejected")
	}
}

func TestCanUploadToFolder_FolderCaps(t *testing.T) {
	tests := []struct {
		folder string
		cap    int64
	}{
		{models.FolderGallery, 75},
		{models.FolderServices, 10},
		{models.FolderTestimonials, 20},
		{models.FolderPromotions, 3},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			// One below the cap is fine
			ok, _ := CanUploadToFolder(tt.folder, tt.cap-1, 0, 100)
			if !ok {
				t.Errorf("upload below the %s cap should be allowed", tt.folder)
			}

			// At the cap it is rejected
			ok, msg := CanUploadToFolder(tt.folder, tt.cap, 0, 100)
			if ok {
				t.Errorf("upload at the %s cap should be rejected", tt.folder)
			}
			if msg == "" {
				t.Errorf("rejection for %s should carry a message", tt.folder)
			}
		})
	}
}

func TestCanUploadToFolder_UncappedFolder(t *testing.T) {
	ok, msg := CanUploadToFolder(models.FolderGeneral, 10000, 0, 100)
	if !ok {
		t.Errorf("general folder has no cap, got rejection %q", msg)
	}
}

func TestFolderLimit(t *testing.T) {
	if limit, ok := FolderLimit(models.FolderGallery); !ok || limit != 75 {
		t.Errorf("FolderLimit(gallery) = %d, %v", limit, ok)
	}
	if _, ok := FolderLimit(models.FolderGeneral); ok {
		t.Error("FolderLimit(general) should report no cap")
	}
}
