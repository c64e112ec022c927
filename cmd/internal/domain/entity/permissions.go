package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode.
	PermissionAdministrator Permission = 1 << iota

	// PermissionViewRequests allows listing requests, their quote logs and
	// the supplier ranking/pricing helpers.
	PermissionViewRequests

	// PermissionManageRequests allows editing requests: status edits,
	// adding lines and refreshing market prices.
	PermissionManageRequests

	// PermissionDeleteRequests allows permanently removing a request together
	// with its lines, quote log and leads.
	PermissionDeleteRequests

	// PermissionSubmitQuotes allows committing supplier quotations.
	PermissionSubmitQuotes

	// PermissionManageLeads allows moving leads through the sales pipeline.
	PermissionManageLeads

	// PermissionDeleteLeads allows removing leads.
	PermissionDeleteLeads
)

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasAny returns true if the actor has ANY of the target permissions
func (p Permission) HasAny(target Permission) bool {
	return (p & target) > 0
}

// Add appends a permission to the bitmask
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove clears a permission from the bitmask
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}

var permissionNames = []struct {
	perm Permission
	name string
}{
	{PermissionAdministrator, "ADMINISTRATOR"},
	{PermissionViewRequests, "VIEW_REQUESTS"},
	{PermissionManageRequests, "MANAGE_REQUESTS"},
	{PermissionDeleteRequests, "DELETE_REQUESTS"},
	{PermissionSubmitQuotes, "SUBMIT_QUOTES"},
	{PermissionManageLeads, "MANAGE_LEADS"},
	{PermissionDeleteLeads, "DELETE_LEADS"},
}

// String lists the set bits by name, joined with '|'.
func (p Permission) String() string {
	var out string
	for _, pn := range permissionNames {
		if !p.Has(pn.perm) {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += pn.name
	}
	if out == "" {
		return "NONE"
	}
	return out
}
