package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/userflow/ai"
)

// systemPrompt is sent with every request and fixes the assistant persona.
const systemPrompt = `Você é um assistente de marketing para uma plataforma de cursos de tecnologia.
Dado o perfil de um usuário (nome, email, cidade), crie:
- Um resumo do perfil (profile_summary).
- Uma recomendação de trilha de estudos (learning_path).
Retorne SEMPRE um JSON com os campos: profile_summary, learning_path.
Responda sempre em português do Brasil.`

const profileResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "profile_summary": {
      "type": "string"
    },
    "learning_path": {
      "type": "string"
    }
  },
  "required": ["profile_summary", "learning_path"],
  "additionalProperties": false
}`

const userPromptTemplate = `Gere informações para o seguinte usuário:

Nome: %s
Username: %s
Email: %s
Cidade: %s

Regras:
%s

Responda APENAS com um JSON válido que siga exatamente este schema:

%s`

// missingValue stands in for absent user fields.
const missingValue = "não informado"

// buildUserPrompt creates the per-user prompt with the subject and rules embedded.
func buildUserPrompt(subject ai.Subject) string {
	rules := make([]string, len(ai.ProfileRules))
	for i, r := range ai.ProfileRules {
		rules[i] = "- " + r
	}
	return fmt.Sprintf(userPromptTemplate,
		valueOrMissing(subject.Name),
		valueOrMissing(subject.Username),
		valueOrMissing(subject.Email),
		valueOrMissing(subject.City),
		strings.Join(rules, "\n"),
		profileResponseSchema)
}

func valueOrMissing(v *string) string {
	if v == nil {
		return missingValue
	}
	return *v
}
