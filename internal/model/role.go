package model

// ColumnRole is the semantic category assigned to a raw spreadsheet column
// header. Roles are derived per table, never stored.
type ColumnRole string

const (
	RoleName   ColumnRole = "name"
	RoleEmail  ColumnRole = "email"
	RolePhone  ColumnRole = "phone"
	RoleCity   ColumnRole = "city"
	RoleUpdate ColumnRole = "update"
	RoleOther  ColumnRole = "other"
)

// AllColumnRoles returns all defined column roles.
func AllColumnRoles() []ColumnRole {
	return []ColumnRole{
		RoleName,
		RoleEmail,
		RolePhone,
		RoleCity,
		RoleUpdate,
		RoleOther,
	}
}

// ContactRoles returns the roles that carry contact identity. When a table
// has several columns with the same contact role, the first non-empty value
// per row wins.
func ContactRoles() []ColumnRole {
	return []ColumnRole{RoleName, RoleEmail, RolePhone, RoleCity}
}

// FileKind is the category a source file is routed to, inferred from its
// filename.
type FileKind string

const (
	KindLeads    FileKind = "leads"
	KindUpdates  FileKind = "updates"
	KindCallLogs FileKind = "call_logs"
)

// AllFileKinds returns all defined file kinds.
func AllFileKinds() []FileKind {
	return []FileKind{KindLeads, KindUpdates, KindCallLogs}
}

// PhoneForm selects the canonical target shape for phone normalization.
type PhoneForm string

const (
	// PhoneInternational is digits only, leading country code "94".
	// Used as the cross-file join key.
	PhoneInternational PhoneForm = "international"
	// PhoneDomestic is exactly 10 digits with a leading "0".
	// Used for local display and lookup.
	PhoneDomestic PhoneForm = "domestic"
)
