package domain

// Keys consumed from the global settings store. The store itself is owned
// and mutated outside this service; these are read-only inputs.
const (
	SettingRegistrationOpen = "registration_open"
	SettingMinTeamMembers   = "min_team_members"
	SettingMaxTeamMembers   = "max_team_members"
	SettingRegistrationFee  = "registration_fee"
)

// RegistrationSettings is the typed snapshot of the flat key/value store,
// resolved once per call and passed into the core instead of queried inline.
type RegistrationSettings struct {
	Open       bool  `json:"open"`
	MinMembers int   `json:"min_members"`
	MaxMembers int   `json:"max_members"`
	Fee        int64 `json:"fee"`
}
