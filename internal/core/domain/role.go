package domain

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -json -text -sql -output role.gen.go

// Role is the privilege level of an identity. The zero value is RoleUser so
// that a freshly registered account is never privileged by accident.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)
