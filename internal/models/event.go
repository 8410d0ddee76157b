package models

// StorageEvent is the normalized form of a storage object notification as
// delivered by Eventarc. Type comes from the CloudEvent envelope; the rest
// is the event's data payload.
type StorageEvent struct {
	Type        string            `json:"-"`
	Bucket      string            `json:"bucket"`
	ObjectName  string            `json:"name"`
	ContentType string            `json:"contentType"`
	Metadata    map[string]string `json:"metadata"`
}

// Locator returns the gs:// URI identifying the event's object. This is the
// form the analysis backend accepts as a file reference.
func (e StorageEvent) Locator() string {
	return "gs://" + e.Bucket + "/" + e.ObjectName
}
