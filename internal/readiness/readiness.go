// Package readiness decides whether operational screens may be served.
//
// Evaluation never fails. Unmet preconditions are reported as missing items
// and recommended actions in the Result.
package readiness

import (
	"context"
	"fmt"
	"time"

	"xytectl/internal/api"
	"xytectl/internal/connectivity"
	"xytectl/internal/profile"
	"xytectl/pkg/logging"
)

const subsystem = "Readiness"

// State is the aggregate readiness.
type State string

const (
	StateReady      State = "ready"
	StateNeedsSetup State = "needs_setup"
	StateDegraded   State = "degraded"
)

// Action is a remediation step shown on the setup screen.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ProviderStatus summarizes the key slots of one credential provider.
type ProviderStatus struct {
	Provider       string `json:"provider"`
	SlotCount      int    `json:"slotCount"`
	ActiveSlot     string `json:"activeSlot,omitempty"`
	ActiveSlotName string `json:"activeSlotName,omitempty"`
	HasSecret      bool   `json:"hasSecret"`
}

// Credential is the resolved secret behind the first usable provider. It is
// never serialized.
type Credential struct {
	TenantID string
	Provider string
	SlotID   string
	Secret   string
}

// Result is the outcome of one evaluation.
type Result struct {
	State              State               `json:"state"`
	TenantID           string              `json:"tenantId,omitempty"`
	TenantName         string              `json:"tenantName,omitempty"`
	MissingItems       []string            `json:"missingItems"`
	RecommendedActions []Action            `json:"recommendedActions"`
	Providers          []ProviderStatus    `json:"providers"`
	Connectivity       connectivity.Result `json:"connectivity"`
	EvaluatedAt        time.Time           `json:"evaluatedAt"`

	credential *Credential
}

// Credential returns the secret to call the API with, if one resolved.
func (r Result) Credential() (Credential, bool) {
	if r.credential == nil {
		return Credential{}, false
	}
	return *r.credential, true
}

// Ready reports whether operational screens may render.
func (r Result) Ready() bool {
	return r.State == StateReady
}

// ClientFactory builds an API client for a resolved credential.
type ClientFactory func(c Credential) api.Client

// Gate evaluates readiness against the profile and secret stores.
type Gate struct {
	Profiles  profile.Store
	Secrets   profile.SecretStore
	NewClient ClientFactory
	Logger    *logging.Logger
	Now       func() time.Time
}

// Options tune one evaluation.
type Options struct {
	// CheckConnectivity runs a live probe once credentials resolve.
	CheckConnectivity bool
}

// varNamer is implemented by secret stores that can point at where a secret belongs.
type varNamer interface {
	VarName(tenantID, provider, slotID string) string
}

func (g *Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Evaluate runs the readiness checks in order, stopping at the first unmet one.
func (g *Gate) Evaluate(ctx context.Context, opts Options) Result {
	res := Result{
		State:              StateNeedsSetup,
		MissingItems:       []string{},
		RecommendedActions: []Action{},
		Providers:          []ProviderStatus{},
		Connectivity:       connectivity.NotChecked(),
		EvaluatedAt:        g.now(),
	}

	if g.Profiles == nil {
		res.MissingItems = append(res.MissingItems, "active tenant")
		res.RecommendedActions = append(res.RecommendedActions, selectTenantAction)
		return res
	}

	tenantID, ok := g.Profiles.ActiveTenant()
	if !ok {
		res.MissingItems = append(res.MissingItems, "active tenant")
		res.RecommendedActions = append(res.RecommendedActions, selectTenantAction)
		g.Logger.Debug(subsystem, "no active tenant")
		return res
	}
	res.TenantID = tenantID

	tenant, err := g.Profiles.GetTenant(tenantID)
	if err != nil {
		res.MissingItems = append(res.MissingItems, fmt.Sprintf("tenant profile %q", tenantID))
		res.RecommendedActions = append(res.RecommendedActions, Action{
			ID:    "create-profile",
			Label: fmt.Sprintf("Add a profile for tenant %q to profiles.yaml or pick another with --tenant", tenantID),
		})
		g.Logger.Debug(subsystem, "active tenant %s has no profile: %v", tenantID, err)
		return res
	}
	res.TenantName = tenant.Name

	var cred *Credential
	for _, provider := range profile.Providers {
		status, c, action := g.providerStatus(tenantID, provider)
		res.Providers = append(res.Providers, status)
		if c != nil && cred == nil {
			cred = c
		}
		if action != nil {
			res.RecommendedActions = append(res.RecommendedActions, *action)
		}
	}

	if cred == nil {
		res.MissingItems = append(res.MissingItems, "api key")
		return res
	}
	// Provider hints only matter while no key resolves.
	res.RecommendedActions = []Action{}
	res.credential = cred

	if !opts.CheckConnectivity {
		res.State = StateReady
		return res
	}

	var client api.Client
	if g.NewClient != nil {
		client = g.NewClient(*cred)
	}
	res.Connectivity = connectivity.Prober{Client: client, Now: g.Now}.Probe(ctx)
	g.Logger.Debug(subsystem, "connectivity probe for %s: %s", tenantID, res.Connectivity.State)

	switch res.Connectivity.State {
	case connectivity.StateConnected:
		res.State = StateReady
	case connectivity.StateAuthRequired, connectivity.StateMissingKey:
		res.State = StateNeedsSetup
		res.MissingItems = append(res.MissingItems, "valid api key")
		res.RecommendedActions = append(res.RecommendedActions, Action{
			ID:    "replace-key",
			Label: fmt.Sprintf("The API rejected the %s key in slot %q; store a new secret for it", cred.Provider, cred.SlotID),
		})
	default:
		res.State = StateDegraded
		res.RecommendedActions = append(res.RecommendedActions, Action{
			ID:    "retry-connectivity",
			Label: fmt.Sprintf("API unreachable (%s); check the network and retry", res.Connectivity.State),
		})
	}
	return res
}

var selectTenantAction = Action{
	ID:    "select-tenant",
	Label: "Select an active tenant with --tenant or activeTenant in profiles.yaml",
}

func (g *Gate) providerStatus(tenantID, provider string) (ProviderStatus, *Credential, *Action) {
	slots := g.Profiles.ListKeySlots(tenantID, provider)
	status := ProviderStatus{Provider: provider, SlotCount: len(slots)}

	if len(slots) == 0 {
		return status, nil, &Action{ID: "add-key-slot", Label: fmt.Sprintf("Add a %s key slot to the tenant profile", provider)}
	}

	active, ok := g.Profiles.GetActiveKeySlot(tenantID, provider)
	if !ok {
		return status, nil, &Action{ID: "activate-key-slot", Label: fmt.Sprintf("Mark one of the %d %s key slots active", len(slots), provider)}
	}
	status.ActiveSlot = active.ID
	status.ActiveSlotName = active.Name

	if g.Secrets != nil {
		if secret, ok := g.Secrets.GetSlotSecret(tenantID, provider, active.ID); ok {
			status.HasSecret = true
			return status, &Credential{TenantID: tenantID, Provider: provider, SlotID: active.ID, Secret: secret}, nil
		}
	}

	label := fmt.Sprintf("Store the secret for %s slot %q", provider, active.ID)
	if n, ok := g.Secrets.(varNamer); ok {
		label = fmt.Sprintf("Set %s to the %s key for slot %q", n.VarName(tenantID, provider, active.ID), provider, active.ID)
	}
	return status, nil, &Action{ID: "store-secret", Label: label}
}
