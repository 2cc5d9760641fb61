package youtube

import "strings"

// Quality is a download preset offered in the menus.
type Quality string

const (
	QualityBest   Quality = "best"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
	QualityAudio  Quality = "audio"
)

// Qualities lists the presets in menu order; choice "1" is Qualities[0].
var Qualities = []Quality{QualityBest, QualityMedium, QualityLow, QualityAudio}

// DefaultQuality is used for unknown preset names.
const DefaultQuality = QualityBest

// Format selectors handed verbatim to yt-dlp. Video presets prefer H.264 in
// MP4 so the result plays on most devices.
var formatSelectors = map[Quality]string{
	QualityBest:   "bestvideo[ext=mp4][vcodec^=avc1]+bestaudio/best[ext=mp4]",
	QualityMedium: "bestvideo[height<=720][ext=mp4][vcodec^=avc1]+bestaudio/best[height<=720][ext=mp4]",
	QualityLow:    "bestvideo[height<=480][ext=mp4][vcodec^=avc1]+bestaudio/best[height<=480][ext=mp4]",
	QualityAudio:  "bestaudio/best",
}

// FormatSelector maps a preset to its selector. Unknown presets get the
// DefaultQuality selector.
func FormatSelector(q Quality) string {
	if sel, ok := formatSelectors[q]; ok {
		return sel
	}
	return formatSelectors[DefaultQuality]
}

// IsAudio reports whether the preset extracts audio only.
func (q Quality) IsAudio() bool {
	return q == QualityAudio
}

// Valid reports whether q is one of the known presets.
func (q Quality) Valid() bool {
	_, ok := formatSelectors[q]
	return ok
}

// ParseQuality normalizes a preset name, falling back to DefaultQuality.
func ParseQuality(name string) Quality {
	q := Quality(strings.ToLower(strings.TrimSpace(name)))
	if q.Valid() {
		return q
	}
	return DefaultQuality
}

// QualityFromChoice maps a numeric menu choice ("1".."4") to its preset.
func QualityFromChoice(choice string) (Quality, bool) {
	switch strings.TrimSpace(choice) {
	case "1":
		return QualityBest, true
	case "2":
		return QualityMedium, true
	case "3":
		return QualityLow, true
	case "4":
		return QualityAudio, true
	}
	return "", false
}

// ChoiceFor is the inverse of QualityFromChoice.
func ChoiceFor(q Quality) string {
	for i, candidate := range Qualities {
		if candidate == q {
			return string(rune('1' + i))
		}
	}
	return "1"
}

// Ext is the extension of the final file produced for a preset.
func (q Quality) Ext(audioFormat, mergeFormat string) string {
	if q.IsAudio() {
		if audioFormat == "" {
			return "mp3"
		}
		return audioFormat
	}
	if mergeFormat == "" {
		return "mp4"
	}
	return mergeFormat
}
