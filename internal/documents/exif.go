package documents

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// photoTakenAt reads the EXIF capture timestamp from a photo upload.
// Photos without EXIF data (screenshots, stripped images) return false.
func photoTakenAt(data []byte) (time.Time, bool) {
	meta, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return time.Time{}, false
	}
	takenAt, err := meta.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return takenAt, true
}
