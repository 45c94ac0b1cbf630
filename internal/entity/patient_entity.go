package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Patient is a post-discharge report as handed over by the hospital.
type Patient struct {
	Id                    uuid.UUID
	PatientName           string
	DischargeDate         string
	PrimaryDiagnosis      string
	Medications           datatypes.JSON // JSON array of medication strings
	DietaryRestrictions   string
	FollowUp              string
	WarningSigns          string
	DischargeInstructions string
	CreatedAt             time.Time
}
