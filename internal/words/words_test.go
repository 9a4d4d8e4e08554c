package words

import "testing"

func TestInitEmbeddedDefaults(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ans, allowed := Stats()
	if ans == 0 {
		t.Fatal("no answers loaded from embedded defaults")
	}
	if allowed < ans {
		t.Errorf("allowed set (%d) must include all answers (%d)", allowed, ans)
	}
}

func TestRandomAnswerIsValid(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		w := RandomAnswer()
		if len(w) != 5 || !isAlpha(w) {
			t.Fatalf("RandomAnswer returned invalid word %q", w)
		}
		if !IsAnswer(w) {
			t.Fatalf("RandomAnswer returned %q which is not in the answers set", w)
		}
		if !IsAllowed(w) {
			t.Fatalf("answer %q must always be an allowed guess", w)
		}
	}
}

func TestIsAllowedCaseInsensitive(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if !IsAllowed("APPLE") {
		t.Error("uppercase lookup of an answer should be allowed")
	}
	if !IsAllowed("speed") {
		t.Error("allowed-list word should be accepted")
	}
	if IsAllowed("zzzzz") {
		t.Error("garbage word should not be allowed")
	}
}
