package service_test

import (
	"testing"

	"quizdeck/internal/model"
	"quizdeck/internal/service"
)

func TestRandomPickerReturnsACandidate(t *testing.T) {
	picker := service.NewQuestionPicker()
	candidates := []model.Question{{ID: 1}, {ID: 2}, {ID: 3}}

	valid := map[uint]bool{1: true, 2: true, 3: true}
	for i := 0; i < 50; i++ {
		picked := picker.Pick(candidates)
		if !valid[picked.ID] {
			t.Fatalf("picker returned question %d, not among candidates", picked.ID)
		}
	}
}

func TestRandomPickerSingleCandidate(t *testing.T) {
	picker := service.NewQuestionPicker()
	only := model.Question{ID: 7}

	if picked := picker.Pick([]model.Question{only}); picked.ID != only.ID {
		t.Errorf("picker returned %d from a single-element set, want 7", picked.ID)
	}
}
