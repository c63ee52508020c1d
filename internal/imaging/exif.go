package imaging

import (
	exif "github.com/dsoprea/go-exif/v3"
)

// EXIFTag is one metadata entry displayed in the report's Original panel.
type EXIFTag struct {
	// Name is the EXIF tag name.
	Name string

	// Value is the formatted tag value.
	Value string
}

// displayTags lists the tags worth surfacing in a report, in display
// order. Everything else (thumbnails, interoperability pointers, raw
// maker notes) is noise for a visual comparison document.
var displayTags = []string{
	"Make",
	"Model",
	"Software",
	"DateTimeOriginal",
	"DateTime",
	"Artist",
	"Copyright",
	"ExposureTime",
	"FNumber",
	"ISOSpeedRatings",
	"FocalLength",
}

// EXIFTags extracts display-worthy EXIF metadata from image bytes.
// It returns nil when the image carries no EXIF segment or the segment
// cannot be parsed: metadata is a nice-to-have for the report, never a
// reason to fail it.
func EXIFTags(data []byte) []EXIFTag {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	values := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, dup := values[entry.TagName]; dup {
			continue
		}
		values[entry.TagName] = entry.Formatted
	}

	tags := make([]EXIFTag, 0, len(displayTags))
	for _, name := range displayTags {
		if v, ok := values[name]; ok && v != "" {
			tags = append(tags, EXIFTag{Name: name, Value: v})
		}
	}

	if len(tags) == 0 {
		return nil
	}
	return tags
}
