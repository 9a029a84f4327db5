package fielddemux

import "testing"

func TestFieldLocksAfterKConsistentObservations(t *testing.T) {
	d := NewWithLockThreshold(3)

	if _, known := d.Field(21); known {
		t.Fatal("field should not be known before any observation")
	}

	d.observe(21, 0)
	d.observe(21, 0)
	if _, known := d.Field(21); known {
		t.Fatal("field should not lock before reaching the threshold")
	}

	d.observe(21, 0)
	field, known := d.Field(21)
	if !known || field != 0 {
		t.Fatalf("Field(21) = %d, %v; want 0, true after 3 consistent observations", field, known)
	}
}

func TestFieldStaysLockedDespiteLaterConflictingObservations(t *testing.T) {
	d := NewWithLockThreshold(2)
	d.observe(284, 1)
	d.observe(284, 1)
	if f, known := d.Field(284); !known || f != 1 {
		t.Fatalf("Field(284) = %d, %v; want 1, true", f, known)
	}

	d.observe(284, 0)
	if f, known := d.Field(284); !known || f != 1 {
		t.Fatalf("Field(284) = %d, %v after a conflicting observation; want to stay locked at 1", f, known)
	}
}
