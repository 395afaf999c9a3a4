package models

// Slot is one of the two asset roles an upload may fill.
type Slot string

const (
	SlotThumbnail Slot = "thumbnail"
	SlotVideo     Slot = "video"
)

// Slots lists every slot in resolution order.
var Slots = []Slot{SlotThumbnail, SlotVideo}

func (s Slot) String() string { return string(s) }

// FileField is the multipart field carrying an uploaded file for the slot.
func (s Slot) FileField() string { return string(s) }

// URLField is the multipart text field carrying a remote URL for the slot.
func (s Slot) URLField() string { return string(s) + "URL" }

// SidecarName is the file recording a URL reference inside the item directory.
func (s Slot) SidecarName() string { return string(s) + "-url.txt" }

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	return s == SlotThumbnail || s == SlotVideo
}

// UploadedFile is a file that has been staged to a temporary location and is
// waiting to be moved into its item directory.
type UploadedFile struct {
	Slot         Slot
	TempPath     string
	OriginalName string
	ContentType  string
	Size         int64
}
