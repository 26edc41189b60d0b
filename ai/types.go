package ai

// Authoring rules embedded in every generation prompt.
var ProfileRules = []string{
	"profile_summary: no máximo 2 parágrafos curtos.",
	"learning_path: sugestão objetiva de trilha (ex: Backend Java, Dados com Python, Frontend React, etc.).",
}

// LearningTracks are example study tracks offered by the course platform.
var LearningTracks = []string{
	"Backend Java",
	"Backend Go",
	"Dados com Python",
	"Frontend React",
	"Mobile com Flutter",
	"DevOps e Cloud",
	"Segurança da Informação",
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
