package domain

// Role is the coarse category assigned to a function by C7, used to weight
// its score (§4.7, GLOSSARY).
type Role string

const (
	RolePureLogic          Role = "PureLogic"
	RoleEntryPoint         Role = "EntryPoint"
	RoleIOWrapper          Role = "IOWrapper"
	RoleOrchestrator       Role = "Orchestrator"
	RoleTest               Role = "Test"
	RoleTraitImpl          Role = "TraitImpl"
	RoleFormattingFunction Role = "FormattingFunction"
	RoleUnknown            Role = "Unknown"
)
