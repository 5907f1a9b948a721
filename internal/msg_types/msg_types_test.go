package msg_types

import "testing"

func TestCounter_SkipsZero(t *testing.T) {
	c := Counter{-1}
	c.Inc()
	if c.Value() != 1 {
		t.Errorf("Value() = %d, want 1", c.Value())
	}

	c = Counter{32767}
	c.Inc()
	if c.Value() != -32768 {
		t.Errorf("Value() = %d, want -32768", c.Value())
	}
}

func TestNewInfo_UniqueTags(t *testing.T) {
	a := NewInfo("one")
	b := NewInfo("two")
	if a.Tag == b.Tag {
		t.Errorf("tags equal: %d", a.Tag)
	}
	if a.Message != "one" {
		t.Errorf("Message = %q", a.Message)
	}
}

func TestProcessWithClearError_NilCmd(t *testing.T) {
	cmd := ProcessWithClearError(nil)
	if _, ok := cmd().(ClearErrorMsg); !ok {
		t.Errorf("cmd() = %T, want ClearErrorMsg", cmd())
	}
}
