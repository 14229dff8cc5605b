package domain

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"xytectl/internal/api"
	"xytectl/internal/screen"
)

// Loader fetches and normalizes the payloads an operational screen needs.
type Loader struct {
	Client api.Client
}

type fetchFunc func(context.Context) (any, error)

// Load returns the state for an operational screen. Setup and config are
// assembled locally and are rejected here.
func (l Loader) Load(ctx context.Context, id screen.ID) (State, error) {
	if l.Client == nil {
		return nil, api.NewMissingKeyError(api.EndpointOrganization)
	}
	c := l.Client

	switch id {
	case screen.Dashboard:
		return l.loadDashboard(ctx)
	case screen.Spaces:
		var spaces, devices any
		if err := fetchAll(ctx, map[*any]fetchFunc{&spaces: c.ListSpaces, &devices: c.ListDevices}); err != nil {
			return nil, err
		}
		return SpacesState{ListView: ListView{Selected: -1}, Spaces: NormalizeSpaces(spaces), Devices: NormalizeDevices(devices)}, nil
	case screen.Devices:
		p, err := c.ListDevices(ctx)
		if err != nil {
			return nil, err
		}
		return DevicesState{ListView: ListView{Selected: -1}, Devices: NormalizeDevices(p)}, nil
	case screen.Incidents:
		p, err := c.ListIncidents(ctx)
		if err != nil {
			return nil, err
		}
		return IncidentsState{ListView: ListView{Selected: -1}, Incidents: NormalizeIncidents(p)}, nil
	case screen.Tickets:
		p, err := c.ListTickets(ctx)
		if err != nil {
			return nil, err
		}
		return TicketsState{ListView: ListView{Selected: -1}, Tickets: NormalizeTickets(p)}, nil
	case screen.Copilot:
		p, err := c.GetOrganizationInfo(ctx)
		if err != nil {
			return nil, err
		}
		org := NormalizeOrganization(p)
		return CopilotState{Organization: org, Transcript: []string{}, Context: org.Raw()}, nil
	default:
		return nil, fmt.Errorf("screen %q is not loaded from the API", id)
	}
}

func (l Loader) loadDashboard(ctx context.Context) (State, error) {
	c := l.Client
	var org, devices, spaces, incidents, tickets any
	err := fetchAll(ctx, map[*any]fetchFunc{
		&org:       c.GetOrganizationInfo,
		&devices:   c.ListDevices,
		&spaces:    c.ListSpaces,
		&incidents: c.ListIncidents,
		&tickets:   c.ListTickets,
	})
	if err != nil {
		return nil, err
	}
	return DashboardState{
		Organization: NormalizeOrganization(org),
		Devices:      NormalizeDevices(devices),
		Spaces:       NormalizeSpaces(spaces),
		Incidents:    NormalizeIncidents(incidents),
		Tickets:      NormalizeTickets(tickets),
	}, nil
}

// fetchAll runs every fetch concurrently and stores each payload through its
// pointer. The first error cancels the rest.
func fetchAll(ctx context.Context, fetches map[*any]fetchFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for dst, fetch := range fetches {
		g.Go(func() error {
			p, err := fetch(ctx)
			if err != nil {
				return err
			}
			*dst = p
			return nil
		})
	}
	return g.Wait()
}
