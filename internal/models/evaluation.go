package models

import (
	"time"
)

// ResumeEvaluation is one submission: the extracted résumé text, the job
// context it was reviewed against and the two generated feedback documents.
// Records are written once and never updated.
type ResumeEvaluation struct {
	ID                 string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FileName           string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileContent        string    `gorm:"type:text;not null" json:"file_content"`
	JobType            string    `gorm:"type:varchar(100);not null" json:"job_type"`
	Profession         string    `gorm:"type:varchar(100);not null" json:"profession"`
	CompanyDescription string    `gorm:"type:text;not null" json:"company_description"`
	Evaluation         string    `gorm:"type:text;not null" json:"evaluation"`
	Improvements       string    `gorm:"type:text;not null" json:"improvements"`
	StoredFile         string    `gorm:"type:text" json:"stored_file,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ResumeEvaluation) TableName() string {
	return "resume_evaluations"
}

// JobContext is the caller-supplied description of the position the résumé
// is reviewed against.
type JobContext struct {
	JobType            string `form:"tipo_vaga" json:"tipo_vaga" validate:"required"`
	Profession         string `form:"profissao" json:"profissao" validate:"required"`
	CompanyDescription string `form:"descricao_empresa" json:"descricao_empresa" validate:"required"`
}
