package components

import (
	"strings"
	"testing"

	"github.com/vigilops/vigil/internal/notify"
)

func TestToastStackEmptyRendersNothing(t *testing.T) {
	s := NewToastStack(5)
	s.SetWidth(80)

	if out := s.View(nil); out != "" {
		t.Errorf("empty queue must render no overlay shell, got %q", out)
	}
}

func TestToastStackRendersInOrder(t *testing.T) {
	s := NewToastStack(5)
	s.SetWidth(80)

	out := s.View([]notify.Notification{
		{ID: "1", Type: notify.TypeSuccess, Message: "first message"},
		{ID: "2", Type: notify.TypeError, Message: "second message"},
	})

	first := strings.Index(out, "first message")
	second := strings.Index(out, "second message")
	if first == -1 || second == -1 {
		t.Fatal("both messages should render")
	}
	if first > second {
		t.Error("insertion order should be preserved top to bottom")
	}
}

func TestToastStackCapsVisible(t *testing.T) {
	s := NewToastStack(2)
	s.SetWidth(80)

	out := s.View([]notify.Notification{
		{ID: "1", Type: notify.TypeInfo, Message: "one"},
		{ID: "2", Type: notify.TypeInfo, Message: "two"},
		{ID: "3", Type: notify.TypeInfo, Message: "three"},
	})

	if strings.Contains(out, "three") {
		t.Error("overflow notification should not render yet")
	}
	if !strings.Contains(out, "1 more") {
		t.Error("overflow count should be surfaced")
	}
}
