package store

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type item struct {
	ID   int
	Name string
	Note string
}

func (i item) RecordID() int { return i.ID }

func matchName(i item, term string) bool {
	return strings.Contains(strings.ToLower(i.Name), strings.ToLower(term))
}

func seeded() *Collection[item] {
	return New(matchName, item{ID: 1, Name: "James"}, item{ID: 2, Name: "Sarah"})
}

func TestAddPrependsWithNextID(t *testing.T) {
	c := seeded()
	got := c.Add(func(id int) item { return item{ID: id, Name: "Ana"} })

	if got.ID != 3 {
		t.Errorf("id = %d, want 3", got.ID)
	}
	if all := c.All(); all[0].Name != "Ana" || len(all) != 3 {
		t.Errorf("head = %+v", all[0])
	}
}

func TestIDsAreNotReusedAfterRemove(t *testing.T) {
	c := seeded()
	if _, err := c.Remove(2); err != nil {
		t.Fatal(err)
	}
	got := c.Add(func(id int) item { return item{ID: id} })
	if got.ID != 3 {
		t.Errorf("id = %d, want 3 (length+1 would give 2)", got.ID)
	}
}

func TestFreshCollectionStartsAtOne(t *testing.T) {
	c := New[item](matchName)
	if got := c.Add(func(id int) item { return item{ID: id} }); got.ID != 1 {
		t.Errorf("id = %d", got.ID)
	}
}

func TestAddThenFilter(t *testing.T) {
	c := seeded()
	c.Add(func(id int) item { return item{ID: id, Name: "Ana"} })

	if got := c.Filter("ANA"); len(got) != 1 || got[0].Name != "Ana" {
		t.Errorf("filter ANA = %+v", got)
	}
	c.Add(func(id int) item { return item{ID: id, Name: "Bob"} })
	if got := c.Filter("ana"); len(got) != 1 {
		t.Errorf("Bob must not match ana: %+v", got)
	}

	v := c.View("zzz")
	if v.Shown != 0 || v.Total != 4 || len(v.Items) != 0 {
		t.Errorf("view = %+v", v)
	}
	if v := c.View("  "); v.Shown != 4 {
		t.Errorf("blank term should match all, got %d", v.Shown)
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	c := seeded()
	got := c.Filter("")
	got[0].Name = "changed"
	if all := c.All(); all[0].Name != "James" {
		t.Error("filter result aliases collection storage")
	}
}

func TestUpdatePreservesIdentityAndUntouchedFields(t *testing.T) {
	c := New(matchName, item{ID: 7, Name: "James", Note: "keep"})

	got, err := c.Update(7, func(i *item) error {
		i.Name = "Jim"
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 7 || got.Name != "Jim" || got.Note != "keep" {
		t.Errorf("got %+v", got)
	}
	if stored, _ := c.Get(7); stored != got {
		t.Errorf("stored %+v", stored)
	}
}

func TestUpdateRejectsIDChange(t *testing.T) {
	c := seeded()
	_, err := c.Update(1, func(i *item) error {
		i.ID = 99
		return nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("record lost")
	}
}

func TestUpdateMutatorErrorLeavesRecord(t *testing.T) {
	c := seeded()
	boom := errors.New("boom")
	_, err := c.Update(1, func(i *item) error {
		i.Name = "partial"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if got, _ := c.Get(1); got.Name != "James" {
		t.Errorf("partial update leaked: %+v", got)
	}
}

func TestMissingIDs(t *testing.T) {
	c := seeded()
	before := c.All()

	if _, err := c.Update(42, func(*item) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("update err = %v", err)
	}
	if _, err := c.Remove(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove err = %v", err)
	}
	after := c.All()
	if len(after) != len(before) || after[0] != before[0] || after[1] != before[1] {
		t.Error("collection changed on missing id")
	}
}

func TestRemove(t *testing.T) {
	c := seeded()
	removed, err := c.Remove(1)
	if err != nil || removed.Name != "James" {
		t.Fatalf("removed %+v, %v", removed, err)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("still present")
	}
}

func TestViewCountsAgreeUnderWrites(t *testing.T) {
	c := seeded()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			c.Add(func(id int) item { return item{ID: id, Name: "Extra"} })
		}
	}()

	for i := 0; i < 500; i++ {
		v := c.View("")
		if v.Shown != v.Total || len(v.Items) != v.Total {
			t.Fatalf("shown %d of %d with %d items", v.Shown, v.Total, len(v.Items))
		}
	}
	wg.Wait()
}
