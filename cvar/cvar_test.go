// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"testing"

	"github.com/pkg/errors"
)

func TestSetByString(t *testing.T) {
	v := New()
	cv := v.MustRegister("r_workers", "4", "", NONE)
	if cv.Value() != 4 {
		t.Errorf("Value() = %v, want 4", cv.Value())
	}
	cv.SetByString("2.5")
	if cv.Value() != 2.5 || cv.String() != "2.5" {
		t.Errorf("after set: %v %q", cv.Value(), cv.String())
	}
	cv.Reset()
	if cv.String() != "4" {
		t.Errorf("Reset() = %q, want 4", cv.String())
	}
}

func TestCallback(t *testing.T) {
	v := New()
	cv := v.MustRegister("mesh_yup", "0", "", NONE)
	var got bool
	cv.SetCallback(func(c *Cvar) { got = c.Bool() })
	if err := v.Set("mesh_yup", "1"); err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Errorf("callback did not observe the new value")
	}
	cv.Toggle()
	if got {
		t.Errorf("toggle did not flip the value")
	}
}

func TestSetErrors(t *testing.T) {
	v := New()
	v.MustRegister("fs_version", "1", "", ROM)
	if err := v.Set("nope", "1"); errors.Cause(err) != ErrUnknown {
		t.Errorf("Set(nope) = %v, want ErrUnknown", err)
	}
	if err := v.Set("fs_version", "2"); err == nil {
		t.Errorf("Set on read only variable succeeded")
	}
	if _, err := v.Register("fs_version", "3", "", NONE); err == nil {
		t.Errorf("duplicate Register succeeded")
	}
}

func TestAllSorted(t *testing.T) {
	v := New()
	v.MustRegister("b", "", "", NONE)
	v.MustRegister("a", "", "", NONE)
	all := v.All()
	if len(all) != 2 || all[0].Name() != "a" || all[1].Name() != "b" {
		t.Errorf("All() not sorted")
	}
}
