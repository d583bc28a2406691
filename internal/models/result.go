package models

import "html/template"

type ErrorResponse struct {
	Erro string `json:"erro"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// EvaluationView is what the detail and listing templates render. The two
// generated fields are already sanitized HTML produced by the markdown
// renderer.
type EvaluationView struct {
	ID                 string
	FileName           string
	JobType            string
	Profession         string
	CompanyDescription string
	Evaluation         template.HTML
	Improvements       template.HTML
	CreatedAt          string
}

func NewEvaluationView(e *ResumeEvaluation) EvaluationView {
	view := EvaluationView{
		ID:                 e.ID,
		FileName:           e.FileName,
		JobType:            e.JobType,
		Profession:         e.Profession,
		CompanyDescription: e.CompanyDescription,
		Evaluation:         template.HTML(e.Evaluation),
		Improvements:       template.HTML(e.Improvements),
	}
	if !e.CreatedAt.IsZero() {
		view.CreatedAt = e.CreatedAt.Format("02/01/2006 15:04")
	}
	return view
}
