package memory

import (
	"testing"
	"time"

	"postcare-ai-be/pkg/store"
)

func TestSessionLifecycle(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	sess := store.NewSession("sess-1")
	repo.Save(sess)

	got, found := repo.Get("sess-1")
	if !found {
		t.Fatal("expected session to be found")
	}
	if got.ActiveRole != store.RoleIntake {
		t.Errorf("new session role = %s, want INTAKE", got.ActiveRole)
	}

	repo.Delete("sess-1")
	if _, found := repo.Get("sess-1"); found {
		t.Error("expected session to be gone after delete")
	}
}

func TestSessionPatientSetOnce(t *testing.T) {
	sess := store.NewSession("sess-2")

	first := &store.PatientContext{PatientName: "John Smith"}
	if ok := sess.SetPatient(first); !ok {
		t.Fatal("first SetPatient should succeed")
	}

	second := &store.PatientContext{PatientName: "Jane Doe"}
	if ok := sess.SetPatient(second); ok {
		t.Error("second SetPatient should be rejected")
	}
	if sess.Patient.PatientName != "John Smith" {
		t.Errorf("patient = %s, want John Smith", sess.Patient.PatientName)
	}
}

func TestSessionTurnHistoryAppendOnly(t *testing.T) {
	sess := store.NewSession("sess-3")
	now := time.Now()

	sess.AppendTurn("user", "receptionist", "Hello", now)
	sess.AppendTurn("model", "receptionist", "Hi, may I have your name?", now)

	if len(sess.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(sess.Turns))
	}
	if sess.Turns[0].Text != "Hello" || sess.Turns[1].Speaker != "model" {
		t.Error("turn order not preserved")
	}
}
