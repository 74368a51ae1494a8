// SPDX-License-Identifier: GPL-2.0-or-later

package vpk

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func buildVPK(t *testing.T, files map[string][]byte, preload int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, files, preload); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

var testFiles = map[string][]byte{
	"materials/dev/flat.vmt": []byte(`LightmappedGeneric { "$basetexture" "dev/flat" }`),
	"materials/dev/flat.vtf": bytes.Repeat([]byte{7}, 40),
	"readme":                 []byte("root file without extension"),
	"models/props/crate.mdl": []byte("IDST"),
}

func TestParse(t *testing.T) {
	a, err := Parse(buildVPK(t, testFiles, 4))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	es := a.Entries()
	if len(es) != len(testFiles) {
		t.Fatalf("Entries() = %d, want %d", len(es), len(testFiles))
	}
	for name, want := range testFiles {
		e, ok := a.Entry(name)
		if !ok {
			t.Errorf("Entry(%s) missing", name)
			continue
		}
		got, err := a.Read(e)
		if err != nil {
			t.Errorf("Read(%s): %v", name, err)
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Read(%s) = %q, want %q", name, got, want)
		}
		if err := Verify(e, got); err != nil {
			t.Errorf("Verify(%s): %v", name, err)
		}
	}
	if _, ok := a.Entry("MATERIALS/DEV/FLAT.VMT"); !ok {
		t.Errorf("lookup is case sensitive")
	}
}

func TestVerifyMismatch(t *testing.T) {
	a, err := Parse(buildVPK(t, testFiles, 0))
	if err != nil {
		t.Fatal(err)
	}
	e, _ := a.Entry("readme")
	if err := Verify(e, []byte("tampered")); errors.Cause(err) != ErrCRC {
		t.Errorf("Verify = %v, want ErrCRC", err)
	}
}

func TestBadInput(t *testing.T) {
	good := buildVPK(t, testFiles, 0)
	tests := map[string][]byte{
		"short":     good[:8],
		"signature": append([]byte{0, 0, 0, 0}, good[4:]...),
		"tree":      good[:20],
	}
	for name, data := range tests {
		if _, err := Parse(data); err == nil {
			t.Errorf("%s: Parse succeeded", name)
		}
	}
	v := append([]byte(nil), good...)
	v[4] = 9
	if _, err := Parse(v); errors.Cause(err) != ErrVersion {
		t.Errorf("version 9: err = %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "pak01_dir.vpk")
	if err := os.WriteFile(name, buildVPK(t, testFiles, 2), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()
	e, ok := a.Entry("materials/dev/flat.vtf")
	if !ok {
		t.Fatal("entry missing")
	}
	got, err := a.Read(e)
	if err != nil || !bytes.Equal(got, testFiles["materials/dev/flat.vtf"]) {
		t.Errorf("Read = %v, %v", got, err)
	}
	if s := a.siblingName(3); filepath.Base(s) != "pak01_003.vpk" {
		t.Errorf("siblingName(3) = %s", s)
	}
}
