package models

import (
	"encoding/json"
	"time"
)

// Snapshot is the full persisted document.
type Snapshot struct {
	Users     []User          `json:"users"`
	MenuItems []MenuItem      `json:"menuItems"`
	SalesData json.RawMessage `json:"salesData"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Users:     make([]User, len(s.Users)),
		MenuItems: make([]MenuItem, len(s.MenuItems)),
	}
	copy(out.Users, s.Users)
	for i, item := range s.MenuItems {
		if item.Image != nil {
			img := *item.Image
			item.Image = &img
		}
		out.MenuItems[i] = item
	}
	if s.SalesData != nil {
		out.SalesData = append(json.RawMessage(nil), s.SalesData...)
	}
	return out
}

// OTPEntry is a pending one-time code for a user.
type OTPEntry struct {
	Username string
	Code     string
	IssuedAt time.Time
}
