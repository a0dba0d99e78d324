package domain

// Picture is a named image reference attached to a Step. Pictures are
// embedded in the step record, not stored separately.
//
// Name is the picture's identity within its step — picture names must be
// unique per step. Location is server-owned: it is set when the picture is
// attached (by the upload process) and is never modifiable through the bulk
// update path. Caption and ShownInGallery are caller-owned and mutable.
//
// The json tags define the shape pictures are persisted in on the step row.
type Picture struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	Caption        string `json:"caption"`
	ShownInGallery bool   `json:"shownInGallery"`
}
