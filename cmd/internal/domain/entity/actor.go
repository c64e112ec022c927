package entity

// Actor is the authenticated caller of the back-office API.
// Users are managed by the identity provider, we only see the token claims.
type Actor struct {
	Subject     string
	Permissions Permission
}
