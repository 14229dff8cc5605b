package domain

import "strings"

// Organization is the tenant's organization info.
type Organization struct {
	Record
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Plan        string `json:"plan,omitempty"`
	DeviceCount int    `json:"deviceCount,omitempty"`
	SpaceCount  int    `json:"spaceCount,omitempty"`
}

// Device is one managed device.
type Device struct {
	Record
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Status   string `json:"status,omitempty"`
	Online   *bool  `json:"online,omitempty"`
	Model    string `json:"model,omitempty"`
	SpaceID  string `json:"spaceId,omitempty"`
	LastSeen string `json:"lastSeen,omitempty"`
}

// Space is a site, building, or room.
type Space struct {
	Record
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
	DeviceCount int    `json:"deviceCount"`
}

// Incident is an open or historical device incident.
type Incident struct {
	Record
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Status    string `json:"status,omitempty"`
	Severity  string `json:"severity,omitempty"`
	DeviceID  string `json:"deviceId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Open reports whether the incident still needs attention.
func (i Incident) Open() bool {
	return isOpenStatus(i.Status)
}

// Ticket is a support ticket.
type Ticket struct {
	Record
	ID        string `json:"id,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Status    string `json:"status,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Assignee  string `json:"assignee,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Open reports whether the ticket is unresolved.
func (t Ticket) Open() bool {
	return isOpenStatus(t.Status)
}

func isOpenStatus(s string) bool {
	switch strings.ToLower(s) {
	case "closed", "resolved", "done", "cancelled", "canceled":
		return false
	}
	return true
}

// DeviceOnline reports whether a device is known to be online.
func DeviceOnline(d Device) bool {
	if d.Online != nil {
		return *d.Online
	}
	switch strings.ToLower(d.Status) {
	case "online", "ok", "healthy", "connected", "up":
		return true
	}
	return false
}
