// This file is part of spamdbg.
//
// spamdbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// spamdbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with spamdbg.  If not, see <https://www.gnu.org/licenses/>.

package annotations_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/memory"
	"github.com/spam1/spamdbg/memory/annotations"
	"github.com/spam1/spamdbg/test"
)

func TestLoad(t *testing.T) {
	input := strings.Join([]string{
		"16=counter",
		"",
		"no equals sign",
		"abc=bad address",
		"70000=out of range",
		"32=a=b",
		"48=",
		"  64 =spaced\r",
	}, "\n")

	m, errs := annotations.Load(strings.NewReader(input))

	// each malformed line is reported on its own
	test.DemandEquality(t, len(errs), 3)
	for _, err := range errs {
		test.ExpectSuccess(t, curated.Has(err, curated.InvalidArgument))
	}
	test.ExpectSuccess(t, strings.Contains(errs[0].Error(), "line 3"))

	test.ExpectEquality(t, len(m), 3)
	test.ExpectEquality(t, m[16], "counter")
	test.ExpectEquality(t, m[32], "a=b")
	test.ExpectEquality(t, m[64], "spaced")

	_, ok := m[48]
	test.ExpectFailure(t, ok)
}

func TestLoadLongLine(t *testing.T) {
	long := strings.Repeat("x", 70000)
	input := strings.Join([]string{
		"1=short",
		"2=" + long,
		"3=after",
	}, "\n")

	m, errs := annotations.Load(strings.NewReader(input))
	test.ExpectEquality(t, len(errs), 0)
	test.ExpectEquality(t, len(m), 3)
	test.ExpectEquality(t, m[2], long)
	test.ExpectEquality(t, m[3], "after")

	// a long annotation survives a save and load
	var b strings.Builder
	test.DemandSuccess(t, annotations.Save(&b, m))
	n, errs := annotations.Load(strings.NewReader(b.String()))
	test.ExpectEquality(t, len(errs), 0)
	test.ExpectEquality(t, n[2], long)
	test.ExpectEquality(t, n[3], "after")
}

func TestSave(t *testing.T) {
	var w test.CompareWriter
	err := annotations.Save(&w, map[int]string{
		300: "later",
		2:   "first",
		7:   "",
		9:   "two\nlines",
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("2=first\n9=two lines\n300=later\n"))
}

func TestMissingFile(t *testing.T) {
	m, errs := annotations.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	test.ExpectEquality(t, len(errs), 0)
	test.ExpectEquality(t, len(m), 0)
}

// annotate a number of addresses, persist through the store, and reload into
// a fresh store
func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "comments.txt")

	s := memory.NewStore(nil, nil)
	s.AttachPersister(annotations.NewFile(path))

	want := map[int]string{
		0:               "reset vector",
		0x100:           "x = y + 1",
		memory.Size - 1: "top of memory",
	}
	for a, txt := range want {
		s.SetAnnotation(a, txt)
	}
	s.SetAnnotation(0x200, "")
	test.DemandSuccess(t, s.PersistError())

	m, errs := annotations.NewFile(path).Load()
	test.DemandEquality(t, len(errs), 0)

	r := memory.NewStore(nil, nil)
	r.RestoreAnnotations(m)

	got := r.Annotations()
	test.ExpectEquality(t, len(got), len(want))
	for a, txt := range want {
		test.ExpectEquality(t, got[a], txt, a)
	}

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 1)
}

func TestSaveFileFailure(t *testing.T) {
	dir := t.TempDir()

	// a directory where the file should be makes the rename fail
	path := filepath.Join(dir, "comments.txt")
	test.DemandSuccess(t, os.Mkdir(path, 0o700))
	os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o600)

	err := annotations.SaveFile(path, map[int]string{1: "one"})
	test.ExpectFailure(t, err)

	entries, _ := os.ReadDir(dir)
	test.ExpectEquality(t, len(entries), 1)
}
