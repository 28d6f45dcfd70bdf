package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID                uuid.UUID
	Name              string
	Email             string
	PhoneNumber       string
	Password          string
	NomineeNumber     string
	FingerprintID     *string
	ProfilePictureURL *string
	CreatedAt         time.Time
}

// NewUser carries the fields accepted by signup and fingerprint registration
type NewUser struct {
	Name          string
	Email         string
	PhoneNumber   string
	Password      string
	NomineeNumber string
	FingerprintID *string
}

// Document is the metadata row for a file kept in the object store
type Document struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	FileName     string    `json:"file_name"`
	FirebaseURL  string    `json:"firebase_url"`
	FirebasePath string    `json:"firebase_path"`
	FileSize     int64     `json:"file_size"`
	FileType     *string   `json:"file_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// NewDocument carries the fields accepted by upload
type NewDocument struct {
	UserID       string
	FileName     string
	FirebaseURL  string
	FirebasePath string
	FileSize     int64
	FileType     *string
}

// ScanRecord is the latest fingerprint scan handed over by the scanning device
type ScanRecord struct {
	FingerprintID string
	Timestamp     time.Time
	Type          string
}

// Empty reports whether no scan is held.
func (r ScanRecord) Empty() bool {
	return r.FingerprintID == ""
}

// FingerprintID is a fingerprint template id. Scanners send it either as a
// JSON string or as a number; both decode to the same value.
type FingerprintID string

// UnmarshalJSON accepts strings, numbers and null.
func (f *FingerprintID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FingerprintID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("fingerprint_id must be a string or number: %w", err)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*f = FingerprintID(strconv.FormatInt(i, 10))
		return nil
	}
	// 17.0 and 1.7e1 name the same template as 17
	if fl, err := n.Float64(); err == nil && fl == math.Trunc(fl) && math.Abs(fl) < 1<<53 {
		*f = FingerprintID(strconv.FormatInt(int64(fl), 10))
		return nil
	}
	*f = FingerprintID(n.String())
	return nil
}

// Ptr returns nil for an empty id.
func (f FingerprintID) Ptr() *string {
	if f == "" {
		return nil
	}
	s := string(f)
	return &s
}
