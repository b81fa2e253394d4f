package recordservice

import (
	"time"

	"github.com/ianroy/makerflowPM/internal/models"
)

// WireRecord is one record as the JSON API carries it
type WireRecord struct {
	ID        int64             `json:"id"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at,omitempty"`
}

// WireError is a structured rejection in a response body
type WireError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params,omitempty"`
}

// WireResponse is the envelope of every API response
type WireResponse struct {
	OK      bool              `json:"ok"`
	Records []WireRecord      `json:"records,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Error   *WireError        `json:"error,omitempty"`
	Lookups *WireLookups      `json:"lookups,omitempty"`
}

// WireSaveRequest is the body of a save call
type WireSaveRequest struct {
	ID     int64             `json:"id"`
	Fields map[string]string `json:"fields"`
}

// WireDeleteRequest is the body of a delete call
type WireDeleteRequest struct {
	ID int64 `json:"id"`
}

// WirePermissions mirrors models.Permissions
type WirePermissions struct {
	CanEdit              bool     `json:"can_edit"`
	CanDelete            bool     `json:"can_delete"`
	DeleteRequiresStatus []string `json:"delete_requires_status,omitempty"`
}

// WireLookups mirrors models.Lookups with string keyed maps
type WireLookups struct {
	Statuses    map[string][]string        `json:"statuses"`
	Priorities  []string                   `json:"priorities"`
	Users       []models.Person            `json:"users"`
	Teams       []models.Person            `json:"teams"`
	Spaces      []models.Person            `json:"spaces"`
	Permissions map[string]WirePermissions `json:"permissions"`
}

// EncodeRecords converts records for a list response
func EncodeRecords(records []*models.Record) []WireRecord {
	out := make([]WireRecord, 0, len(records))
	for _, rec := range records {
		fields := make(map[string]string, len(rec.Fields))
		for k, v := range rec.Fields {
			fields[k] = v
		}
		out = append(out, WireRecord{ID: rec.ID, Fields: fields, UpdatedAt: rec.UpdatedAt})
	}
	return out
}

// DecodeRecords converts a list response into records of kind
func DecodeRecords(kind models.EntityKind, wire []WireRecord) []*models.Record {
	records := make([]*models.Record, 0, len(wire))
	for _, wr := range wire {
		rec := models.NewRecord(wr.ID, kind)
		rec.UpdatedAt = wr.UpdatedAt
		for k, v := range wr.Fields {
			rec.Fields[k] = v
		}
		records = append(records, rec)
	}
	return records
}

// EncodeLookups converts option sets for a lookups response
func EncodeLookups(l *models.Lookups) *WireLookups {
	wl := &WireLookups{
		Statuses:    make(map[string][]string, len(l.Statuses)),
		Priorities:  l.Priorities,
		Users:       l.Users,
		Teams:       l.Teams,
		Spaces:      l.Spaces,
		Permissions: make(map[string]WirePermissions, len(l.Permissions)),
	}
	for k, v := range l.Statuses {
		wl.Statuses[string(k)] = v
	}
	for k, v := range l.Permissions {
		wl.Permissions[string(k)] = WirePermissions{
			CanEdit:              v.CanEdit,
			CanDelete:            v.CanDelete,
			DeleteRequiresStatus: v.DeleteRequiresStatus,
		}
	}
	return wl
}

// Decode converts a lookups response back into models.Lookups
func (wl *WireLookups) Decode() *models.Lookups {
	l := &models.Lookups{
		Statuses:    make(map[models.EntityKind][]string, len(wl.Statuses)),
		Priorities:  wl.Priorities,
		Users:       wl.Users,
		Teams:       wl.Teams,
		Spaces:      wl.Spaces,
		Permissions: make(map[models.EntityKind]models.Permissions, len(wl.Permissions)),
	}
	for k, v := range wl.Statuses {
		l.Statuses[models.EntityKind(k)] = v
	}
	for k, v := range wl.Permissions {
		l.Permissions[models.EntityKind(k)] = models.Permissions{
			CanEdit:              v.CanEdit,
			CanDelete:            v.CanDelete,
			DeleteRequiresStatus: v.DeleteRequiresStatus,
		}
	}
	return l
}

// EncodeError converts a rejection into a response error
func EncodeError(re *RemoteError) *WireError {
	return &WireError{Code: re.Code, Message: re.Message, Params: re.Params}
}
