package autosave

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	saves []string
	fail  bool
}

func (r *recorder) save(id string, draft string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("write failed")
	}
	r.saves = append(r.saves, id+"="+draft)
	return nil
}

func (r *recorder) setFail(fail bool) {
	r.mu.Lock()
	r.fail = fail
	r.mu.Unlock()
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.saves...)
}

func waitForState[T any](t *testing.T, s *Saver[T], id string, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.State(id) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("record %s state = %v, want %v", id, s.State(id), want)
}

func TestRapidSubmitsCoalesce(t *testing.T) {
	rec := &recorder{}
	s := New(20*time.Millisecond, rec.save, nil)
	defer s.Close()

	s.Submit("a", "draft-1")
	s.Submit("a", "draft-2")
	s.Submit("a", "draft-3")

	waitForState(t, s, "a", StateClean)

	saves := rec.all()
	if len(saves) != 1 {
		t.Fatalf("saves = %v, want one coalesced write", saves)
	}
	if saves[0] != "a=draft-3" {
		t.Errorf("saved %q, want latest draft", saves[0])
	}
}

func TestIndependentRecords(t *testing.T) {
	rec := &recorder{}
	s := New(20*time.Millisecond, rec.save, nil)
	defer s.Close()

	s.Submit("a", "alpha")
	s.Submit("b", "beta")

	waitForState(t, s, "a", StateClean)
	waitForState(t, s, "b", StateClean)

	if len(rec.all()) != 2 {
		t.Errorf("saves = %v, want one per record", rec.all())
	}
}

func TestSubmitMarksDirty(t *testing.T) {
	rec := &recorder{}
	s := New(time.Hour, rec.save, nil)
	defer s.Close()

	if got := s.State("a"); got != StateClean {
		t.Errorf("unknown record state = %v, want clean", got)
	}
	s.Submit("a", "draft")
	if got := s.State("a"); got != StateDirty {
		t.Errorf("state after Submit = %v, want dirty", got)
	}
}

func TestFlushBypassesWindow(t *testing.T) {
	rec := &recorder{}
	s := New(time.Hour, rec.save, nil)
	defer s.Close()

	s.Submit("a", "draft")
	if err := s.Flush("a"); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got := s.State("a"); got != StateClean {
		t.Errorf("state after Flush = %v, want clean", got)
	}
	if saves := rec.all(); len(saves) != 1 || saves[0] != "a=draft" {
		t.Errorf("saves = %v, want [a=draft]", saves)
	}
}

func TestFlushCleanRecordIsNoop(t *testing.T) {
	rec := &recorder{}
	s := New(time.Hour, rec.save, nil)
	defer s.Close()

	if err := s.Flush("missing"); err != nil {
		t.Fatalf("Flush of unknown record failed: %v", err)
	}
	if len(rec.all()) != 0 {
		t.Errorf("saves = %v, want none", rec.all())
	}
}

func TestFailedFlushParksInError(t *testing.T) {
	rec := &recorder{fail: true}
	s := New(time.Hour, rec.save, nil)
	defer s.Close()

	s.Submit("a", "draft")
	if err := s.Flush("a"); err == nil {
		t.Fatal("Flush should propagate the save error")
	}
	if got := s.State("a"); got != StateError {
		t.Errorf("state after failed flush = %v, want error", got)
	}

	// The retained draft retries once the store recovers.
	rec.setFail(false)
	if err := s.Flush("a"); err != nil {
		t.Fatalf("retry Flush failed: %v", err)
	}
	if got := s.State("a"); got != StateClean {
		t.Errorf("state after retry = %v, want clean", got)
	}
}

func TestNewDraftSupersedesError(t *testing.T) {
	rec := &recorder{fail: true}
	s := New(20*time.Millisecond, rec.save, nil)
	defer s.Close()

	s.Submit("a", "bad")
	waitForState(t, s, "a", StateError)

	rec.setFail(false)
	s.Submit("a", "good")
	waitForState(t, s, "a", StateClean)

	saves := rec.all()
	if len(saves) != 1 || saves[0] != "a=good" {
		t.Errorf("saves = %v, want [a=good]", saves)
	}
}

func TestCloseFlushesPending(t *testing.T) {
	rec := &recorder{}
	s := New(time.Hour, rec.save, nil)

	s.Submit("a", "pending")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if saves := rec.all(); len(saves) != 1 || saves[0] != "a=pending" {
		t.Errorf("saves = %v, want [a=pending]", saves)
	}

	// Submissions after Close are dropped.
	s.Submit("a", "late")
	if got := s.State("a"); got != StateClean {
		t.Errorf("state after post-Close Submit = %v, want clean", got)
	}
}
