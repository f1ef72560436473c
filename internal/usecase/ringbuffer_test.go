package usecase

import (
	"testing"
)

func TestRingBuffer_New(t *testing.T) {
	rb := NewRingBuffer[string](10)

	if rb.Len() != 0 {
		t.Errorf("Expected empty buffer, got %d elements", rb.Len())
	}

	if rb.Cap() != 10 {
		t.Errorf("Expected capacity 10, got %d", rb.Cap())
	}
}

func TestRingBuffer_AddAndGetAll(t *testing.T) {
	rb := NewRingBuffer[string](5)

	rb.Add("msg1")
	rb.Add("msg2")
	rb.Add("msg3")

	if rb.Len() != 3 {
		t.Fatalf("Expected 3 elements, got %d", rb.Len())
	}

	all := rb.GetAll()
	if len(all) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(all))
	}
	if all[0] != "msg1" || all[2] != "msg3" {
		t.Errorf("Unexpected order: %v", all)
	}
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer[string](3)

	for _, m := range []string{"msg1", "msg2", "msg3", "msg4", "msg5"} {
		rb.Add(m)
	}

	if rb.Len() != 3 {
		t.Fatalf("Expected 3 elements (capped), got %d", rb.Len())
	}

	all := rb.GetAll()
	expected := []string{"msg3", "msg4", "msg5"}
	for i, exp := range expected {
		if all[i] != exp {
			t.Errorf("Position %d: expected %s, got %s", i, exp, all[i])
		}
	}
}

func TestRingBuffer_Last(t *testing.T) {
	rb := NewRingBuffer[int](10)
	for i := 1; i <= 7; i++ {
		rb.Add(i)
	}

	last := rb.Last(3)
	if len(last) != 3 || last[0] != 5 || last[2] != 7 {
		t.Errorf("Expected [5 6 7], got %v", last)
	}

	if got := rb.Last(50); len(got) != 7 {
		t.Errorf("Expected all 7 elements, got %d", len(got))
	}

	if got := rb.Last(0); len(got) != 0 {
		t.Errorf("Expected no elements, got %v", got)
	}
}

func TestRingBuffer_RemoveFunc(t *testing.T) {
	rb := NewRingBuffer[string](3)
	for _, m := range []string{"a", "b", "c", "d"} { // wraps, "a" dropped
		rb.Add(m)
	}

	removed, ok := rb.RemoveFunc(func(s string) bool { return s == "c" })
	if !ok || removed != "c" {
		t.Fatalf("Expected to remove c, got %q ok=%v", removed, ok)
	}

	all := rb.GetAll()
	if len(all) != 2 || all[0] != "b" || all[1] != "d" {
		t.Errorf("Expected [b d], got %v", all)
	}

	if _, ok := rb.RemoveFunc(func(s string) bool { return s == "zzz" }); ok {
		t.Error("Expected no removal for missing element")
	}

	// Buffer keeps working after removal
	rb.Add("e")
	rb.Add("f")
	all = rb.GetAll()
	if len(all) != 3 || all[0] != "d" || all[2] != "f" {
		t.Errorf("Expected [d e f], got %v", all)
	}
}

func TestRingBuffer_Clear(t *testing.T) {
	rb := NewRingBuffer[string](5)

	rb.Add("msg1")
	rb.Add("msg2")

	rb.Clear()

	if rb.Len() != 0 {
		t.Errorf("Expected empty after clear, got %d", rb.Len())
	}

	if all := rb.GetAll(); all != nil {
		t.Errorf("Expected nil from empty buffer, got %v", all)
	}
}
