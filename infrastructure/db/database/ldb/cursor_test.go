package ldb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/machinecoin-project/machinecoin-core/infrastructure/db/database"
)

func expectClosedCursorPanic(t *testing.T, testName string, f func()) {
	defer func() {
		panicErr := recover()
		if panicErr == nil {
			t.Fatalf("%s: closed cursor unexpectedly didn't panic", testName)
		}
		if !strings.Contains(fmt.Sprintf("%v", panicErr), "closed cursor") {
			t.Fatalf("%s: cursor panicked with wrong message: %v", testName, panicErr)
		}
	}()
	f()
}

func TestCursorStaysInBucket(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorStaysInBucket")
	defer teardownFunc()

	index := database.MakeBucket([]byte("blockindex"))
	other := database.MakeBucket([]byte("blockindexes"))
	for i := 0; i < 5; i++ {
		err := ldb.Put(index.Key([]byte(fmt.Sprintf("key%d", i))), []byte(fmt.Sprintf("value%d", i)))
		if err != nil {
			t.Fatalf("TestCursorStaysInBucket: Put unexpectedly failed: %s", err)
		}
		err = ldb.Put(other.Key([]byte(fmt.Sprintf("key%d", i))), []byte("other"))
		if err != nil {
			t.Fatalf("TestCursorStaysInBucket: Put unexpectedly failed: %s", err)
		}
	}

	cursor, err := ldb.Cursor(index)
	if err != nil {
		t.Fatalf("TestCursorStaysInBucket: Cursor unexpectedly failed: %s", err)
	}
	defer cursor.Close()

	count := 0
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			t.Fatalf("TestCursorStaysInBucket: Key unexpectedly failed: %s", err)
		}
		wantSuffix := fmt.Sprintf("key%d", count)
		if string(key.Suffix()) != wantSuffix {
			t.Fatalf("TestCursorStaysInBucket: got suffix %q, want %q", key.Suffix(), wantSuffix)
		}
		value, err := cursor.Value()
		if err != nil {
			t.Fatalf("TestCursorStaysInBucket: Value unexpectedly failed: %s", err)
		}
		if string(value) != fmt.Sprintf("value%d", count) {
			t.Fatalf("TestCursorStaysInBucket: got value %q for %q", value, wantSuffix)
		}
		count++
	}
	if count != 5 {
		t.Fatalf("TestCursorStaysInBucket: iterated over %d entries, want 5", count)
	}

	_, err = cursor.Key()
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestCursorStaysInBucket: Key of an exhausted cursor "+
			"returned wrong error: %v", err)
	}
}

func TestCursorSeek(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorSeek")
	defer teardownFunc()

	bucket := database.MakeBucket([]byte("bucket"))
	for _, suffix := range []string{"a", "c", "e"} {
		err := ldb.Put(bucket.Key([]byte(suffix)), []byte(suffix))
		if err != nil {
			t.Fatalf("TestCursorSeek: Put unexpectedly failed: %s", err)
		}
	}
	cursor, err := ldb.Cursor(bucket)
	if err != nil {
		t.Fatalf("TestCursorSeek: Cursor unexpectedly failed: %s", err)
	}
	defer cursor.Close()

	tests := []struct {
		suffix        string
		expectedFound bool
	}{
		{suffix: "c", expectedFound: true},
		{suffix: "b", expectedFound: false},
		{suffix: "z", expectedFound: false},
		{suffix: "a", expectedFound: true},
	}
	for _, test := range tests {
		err := cursor.Seek(bucket.Key([]byte(test.suffix)))
		if test.expectedFound && err != nil {
			t.Errorf("TestCursorSeek: Seek(%s) unexpectedly failed: %s", test.suffix, err)
			continue
		}
		if !test.expectedFound && !database.IsNotFoundError(err) {
			t.Errorf("TestCursorSeek: Seek(%s) returned wrong error: %v", test.suffix, err)
		}
	}
}

func TestClosedCursor(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestClosedCursor")
	defer teardownFunc()

	cursor, err := ldb.Cursor(database.MakeBucket())
	if err != nil {
		t.Fatalf("TestClosedCursor: Cursor unexpectedly failed: %s", err)
	}
	err = cursor.Close()
	if err != nil {
		t.Fatalf("TestClosedCursor: Close unexpectedly failed: %s", err)
	}

	erroring := map[string]func() error{
		"Seek": func() error { return cursor.Seek(database.MakeBucket().Key(nil)) },
		"Key": func() error {
			_, err := cursor.Key()
			return err
		},
		"Value": func() error {
			_, err := cursor.Value()
			return err
		},
		"Close": cursor.Close,
	}
	for name, f := range erroring {
		err := f()
		if err == nil || !strings.Contains(err.Error(), "closed cursor") {
			t.Errorf("TestClosedCursor: %s returned wrong error: %v", name, err)
		}
	}

	expectClosedCursorPanic(t, "TestClosedCursor", func() { cursor.First() })
	expectClosedCursorPanic(t, "TestClosedCursor", func() { cursor.Next() })
}
