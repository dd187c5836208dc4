package core

import "fmt"

// Role identifies one expert session of the script pipeline. The set is closed:
// every value other than the constants below is rejected by ParseRole.
type Role string

const (
	RoleContentStrategist     Role = "content_strategist"
	RoleResearchAssistant     Role = "research_assistant"
	RoleTechnicalWriter       Role = "technical_writer"
	RoleEditor                Role = "editor"
	RoleFactChecker           Role = "fact_checker"
	RoleFormatSpecialist      Role = "format_specialist"
	RoleVoiceProcessingExpert Role = "voice_processing_expert"
	RoleQualityAssurance      Role = "quality_assurance_agent"
)

// roles lists every role in pipeline order.
var roles = []Role{
	RoleContentStrategist,
	RoleResearchAssistant,
	RoleTechnicalWriter,
	RoleEditor,
	RoleFactChecker,
	RoleFormatSpecialist,
	RoleVoiceProcessingExpert,
	RoleQualityAssurance,
}

// Roles returns all supported roles in pipeline order. The slice is a copy.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// ParseRole validates a session identifier supplied by a caller.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSession, s)
	}
	return r, nil
}

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }
