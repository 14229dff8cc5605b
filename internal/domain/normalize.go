package domain

// NormalizeOrganization lifts organization info. A payload that is not an
// object is kept opaque.
func NormalizeOrganization(payload any) Organization {
	m, ok := object(payload)
	if !ok {
		return Organization{Record: Record{Kind: KindOpaque, Value: payload}}
	}
	o := Organization{
		Record: Record{Kind: KindOpaque, Fields: m},
		ID:     str(m, "id", "organization_id", "uuid"),
		Name:   str(m, "name", "organization_name", "title"),
		Plan:   str(m, "plan", "subscription", "tier"),
	}
	o.DeviceCount, _ = count(m, "device_count", "devices_count", "devices")
	o.SpaceCount, _ = count(m, "space_count", "spaces_count", "spaces")
	if o.ID != "" || o.Name != "" {
		o.Kind = KindRecognized
	}
	return o
}

// NormalizeDevices lifts a device listing.
func NormalizeDevices(payload any) []Device {
	els := Elements(payload)
	out := make([]Device, 0, len(els))
	for _, el := range els {
		m, rec := wrap(el)
		d := Device{Record: rec}
		if m != nil {
			d.ID = str(m, "id", "device_id", "uuid", "serial_number")
			d.Name = str(m, "name", "device_name", "title")
			d.Status = str(m, "status", "state", "connection_status")
			d.Online = flag(m, "online", "is_online", "connected")
			d.Model = str(m, "model", "model_name", "type")
			d.SpaceID = str(m, "space_id", "spaceId", "space")
			d.LastSeen = str(m, "last_seen", "last_seen_at", "updated_at")
			if d.ID != "" {
				d.Kind = KindRecognized
			}
		}
		out = append(out, d)
	}
	return out
}

// NormalizeSpaces lifts a space listing.
func NormalizeSpaces(payload any) []Space {
	els := Elements(payload)
	out := make([]Space, 0, len(els))
	for _, el := range els {
		m, rec := wrap(el)
		s := Space{Record: rec}
		if m != nil {
			s.ID = str(m, "id", "space_id", "uuid")
			s.Name = str(m, "name", "title")
			s.Type = str(m, "type", "space_type", "kind")
			s.ParentID = str(m, "parent_id", "parentId")
			s.DeviceCount, _ = count(m, "device_count", "devices_count", "devices")
			if s.ID != "" {
				s.Kind = KindRecognized
			}
		}
		out = append(out, s)
	}
	return out
}

// NormalizeIncidents lifts an incident listing.
func NormalizeIncidents(payload any) []Incident {
	els := Elements(payload)
	out := make([]Incident, 0, len(els))
	for _, el := range els {
		m, rec := wrap(el)
		i := Incident{Record: rec}
		if m != nil {
			i.ID = str(m, "id", "incident_id", "uuid")
			i.Title = str(m, "title", "name", "summary", "description")
			i.Status = str(m, "status", "state")
			i.Severity = str(m, "severity", "priority", "level")
			i.DeviceID = str(m, "device_id", "deviceId", "device")
			i.CreatedAt = str(m, "created_at", "createdAt", "opened_at")
			if i.ID != "" {
				i.Kind = KindRecognized
			}
		}
		out = append(out, i)
	}
	return out
}

// NormalizeTickets lifts a ticket listing.
func NormalizeTickets(payload any) []Ticket {
	els := Elements(payload)
	out := make([]Ticket, 0, len(els))
	for _, el := range els {
		m, rec := wrap(el)
		t := Ticket{Record: rec}
		if m != nil {
			t.ID = str(m, "id", "ticket_id", "number", "uuid")
			t.Subject = str(m, "subject", "title", "summary")
			t.Status = str(m, "status", "state")
			t.Priority = str(m, "priority", "severity")
			t.Assignee = str(m, "assignee", "assigned_to", "owner")
			t.UpdatedAt = str(m, "updated_at", "updatedAt", "created_at")
			if t.ID != "" {
				t.Kind = KindRecognized
			}
		}
		out = append(out, t)
	}
	return out
}
