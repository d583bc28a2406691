package services

import (
	"fmt"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEvaluatorInstruction is the system instruction of the reviewer persona.
func (pb *PromptBuilder) BuildEvaluatorInstruction(job models.JobContext) string {
	return fmt.Sprintf(`Você é uma IA especialista em currículos. Avalie o currículo enviado, destacando pontos fortes e fracos e a adequação ao tipo de vaga '%s', à profissão '%s' e à descrição da empresa '%s'.

Responda em português, em Markdown, com seções para pontos fortes, pontos fracos e aderência à vaga.`,
		job.JobType, job.Profession, job.CompanyDescription)
}

// BuildImproverInstruction is the system instruction of the persona that
// proposes concrete changes.
func (pb *PromptBuilder) BuildImproverInstruction(job models.JobContext) string {
	return fmt.Sprintf(`Você é uma IA especialista em melhorar currículos. Com base no currículo enviado e nos parâmetros abaixo, sugira melhorias específicas para adequar o currículo à vaga desejada:
Tipo de Vaga: %s
Profissão: %s
Descrição da Empresa: %s

Responda em português, em Markdown, como uma lista de sugestões objetivas.`,
		job.JobType, job.Profession, job.CompanyDescription)
}

// BuildUserPrompt is the message body shared by both personas.
func (pb *PromptBuilder) BuildUserPrompt(resumeText string, job models.JobContext) string {
	return fmt.Sprintf("Currículo: %s\nTipo de Vaga: %s\nProfissão: %s\nDescrição da Empresa: %s",
		resumeText, job.JobType, job.Profession, job.CompanyDescription)
}
