package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_MassDeath(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{Species: "fire", WindowEnd: int64(i * 60), AliveFrac: 0.95})
	}

	bookmarks := bd.Check(WindowStats{Species: "fire", WindowEnd: 180, AliveFrac: 0.4})
	if !hasBookmark(bookmarks, BookmarkMassDeath) {
		t.Errorf("expected mass_death bookmark, got %v", bookmarks)
	}

	// Same level again is not a new drop
	bookmarks = bd.Check(WindowStats{Species: "fire", WindowEnd: 240, AliveFrac: 0.4})
	if hasBookmark(bookmarks, BookmarkMassDeath) {
		t.Error("mass_death reported twice for the same drop")
	}
}

func TestBookmarkDetector_Recovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{Species: "smoke", WindowEnd: 60, AliveFrac: 0.2})
	bookmarks := bd.Check(WindowStats{Species: "smoke", WindowEnd: 120, AliveFrac: 0.6})
	if hasBookmark(bookmarks, BookmarkRecovery) {
		t.Error("recovery reported below the recovered threshold")
	}

	bookmarks = bd.Check(WindowStats{Species: "smoke", WindowEnd: 180, AliveFrac: 0.95})
	if !hasBookmark(bookmarks, BookmarkRecovery) {
		t.Errorf("expected recovery bookmark, got %v", bookmarks)
	}
}

func TestBookmarkDetector_QuotaBoundEdge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	tests := []struct {
		share float64
		want  bool
	}{
		{0.1, false},
		{0.8, true},
		{0.9, false}, // still bound
		{0.2, false},
		{0.7, true}, // bound again
	}
	for i, tt := range tests {
		got := hasBookmark(bd.Check(WindowStats{Species: "smoke", ForcedShare: tt.share, AliveFrac: 1}), BookmarkQuotaBound)
		if got != tt.want {
			t.Errorf("window %d (share %.1f): quota_bound = %v, want %v", i, tt.share, got, tt.want)
		}
	}
}

func TestBookmarkDetector_SteadyState(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 8; i++ {
		if hasBookmark(bd.Check(WindowStats{Species: "fire", AliveFrac: 0.98}), BookmarkSteadyState) {
			fired++
			if i != steadyWindows-1 {
				t.Errorf("steady_state fired at window %d, want %d", i, steadyWindows-1)
			}
		}
	}
	if fired != 1 {
		t.Errorf("steady_state fired %d times, want 1", fired)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if cv := coefficientOfVariation([]float64{1, 1, 1}); cv != 0 {
		t.Errorf("cv of constant = %v, want 0", cv)
	}
	if cv := coefficientOfVariation([]float64{0.5, 1.5}); cv < 0.49 || cv > 0.51 {
		t.Errorf("cv = %v, want 0.5", cv)
	}
}
