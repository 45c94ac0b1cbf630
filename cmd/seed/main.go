package main

import (
	"log"
	"os"

	"postcare-ai-be/internal/model"
	"postcare-ai-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding discharge records...")

	patients := []model.Patient{
		{
			PatientName:           "John Smith",
			DischargeDate:         "2026-08-15",
			PrimaryDiagnosis:      "Chronic kidney disease stage 3",
			Medications:           datatypes.JSON(`["Lisinopril 10mg daily", "Furosemide 20mg twice daily", "Calcitriol 0.25mcg daily"]`),
			DietaryRestrictions:   "Low sodium (2g/day), limit potassium and phosphorus, fluid restriction 1.5L/day",
			FollowUp:              "Nephrology clinic in 2 weeks, labs (creatinine, eGFR, electrolytes) in 1 week",
			WarningSigns:          "Swelling in legs or face, shortness of breath, decreased urine output, confusion, chest pain",
			DischargeInstructions: "Weigh yourself daily at the same time. Track blood pressure twice daily. Avoid NSAIDs such as ibuprofen.",
		},
		{
			PatientName:           "Maria Garcia",
			DischargeDate:         "2026-08-20",
			PrimaryDiagnosis:      "Acute kidney injury, resolving",
			Medications:           datatypes.JSON(`["Amlodipine 5mg daily"]`),
			DietaryRestrictions:   "Low sodium diet, stay well hydrated unless told otherwise",
			FollowUp:              "Primary care in 1 week, repeat kidney function labs in 5 days",
			WarningSigns:          "Nausea or vomiting, decreased urination, swelling, fatigue that worsens",
			DischargeInstructions: "Hold all NSAIDs. Resume home blood pressure medication only as instructed.",
		},
		{
			PatientName:           "Robert Chen",
			DischargeDate:         "2026-08-22",
			PrimaryDiagnosis:      "End-stage renal disease on hemodialysis",
			Medications:           datatypes.JSON(`["Sevelamer 800mg with meals", "Epoetin alfa weekly", "Metoprolol 25mg twice daily"]`),
			DietaryRestrictions:   "Renal diet: restrict potassium, phosphorus and sodium, fluid restriction 1L/day",
			FollowUp:              "Dialysis Monday/Wednesday/Friday, vascular access check next session",
			WarningSigns:          "Bleeding or swelling at access site, fever, chest pain, severe cramping",
			DischargeInstructions: "Protect the fistula arm: no blood draws or blood pressure cuffs on that side.",
		},
	}

	for _, p := range patients {
		var existing model.Patient
		err := db.Where("patient_name = ?", p.PatientName).First(&existing).Error
		if err == nil {
			log.Printf("Skipping %s (already seeded)", p.PatientName)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("Error: Failed to seed patient %s: %v", p.PatientName, err)
		}
		log.Printf("Seeded %s", p.PatientName)
	}

	log.Println("✅ Seeding completed")
}
